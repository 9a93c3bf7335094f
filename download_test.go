package biweekly_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planningdata/biweekly"
)

func TestDownloader_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer server.Close()

	d := biweekly.NewDownloader(server.Client())
	data, ok, err := d.Fetch(context.Background(), server.URL+"/report.pdf")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
}

func TestDownloader_Fetch_NonPDFIsSkipNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>no report here</html>"))
	}))
	defer server.Close()

	d := biweekly.NewDownloader(server.Client())
	data, ok, err := d.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "biweekly_case_report_01_15_2024.pdf", biweekly.ReportFilename("01/15/2024", ".pdf"))
	assert.Equal(t, "biweekly_case_report_11_03_2023.csv", biweekly.ReportFilename("11/03/2023", ".csv"))
}

func TestFilenameFromResponse(t *testing.T) {
	t.Run("content disposition wins", func(t *testing.T) {
		header := http.Header{}
		header.Set("Content-Disposition", `attachment; filename="report%20march.pdf"`)
		assert.Equal(t, "report march.pdf", biweekly.FilenameFromResponse(header, "https://example.com/x"))
	})

	t.Run("pdf extension appended", func(t *testing.T) {
		header := http.Header{}
		header.Set("Content-Disposition", `attachment; filename=cases`)
		assert.Equal(t, "cases.pdf", biweekly.FilenameFromResponse(header, "https://example.com/x"))
	})

	t.Run("falls back to URL path", func(t *testing.T) {
		assert.Equal(t, "march.pdf", biweekly.FilenameFromResponse(http.Header{}, "https://example.com/reports/march.pdf"))
	})

	t.Run("last resort default", func(t *testing.T) {
		assert.Equal(t, "downloaded.pdf", biweekly.FilenameFromResponse(http.Header{}, "https://example.com/reports/latest"))
	})
}
