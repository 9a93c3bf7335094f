package biweekly

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var filenameRe = regexp.MustCompile(`filename="?([^"]+)"?`)

// Downloader fetches report PDFs.
type Downloader struct {
	httpClient *http.Client
}

// NewDownloader returns a downloader. A nil httpClient uses
// http.DefaultClient.
func NewDownloader(httpClient *http.Client) *Downloader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Downloader{httpClient: httpClient}
}

// Fetch downloads one report. When the response is not a PDF (some listing
// entries point at HTML notices) it returns ok=false with no error: a
// non-PDF response is a skip, not a failure.
func (d *Downloader) Fetch(ctx context.Context, reportURL string) (data []byte, ok bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reportURL, nil)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to build download request")
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to download %s", reportURL)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "application/pdf") {
		return nil, false, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, false, errors.Errorf("download of %s returned status %d", reportURL, resp.StatusCode)
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read %s", reportURL)
	}

	return data, true, nil
}

// ReportFilename derives the stable per-report filename from its listing
// date, e.g. "biweekly_case_report_01_15_2024.pdf" for "01/15/2024".
func ReportFilename(date, ext string) string {
	return "biweekly_case_report_" + strings.ReplaceAll(date, "/", "_") + ext
}

// FilenameFromResponse recovers a .pdf filename for an ad-hoc download,
// preferring the Content-Disposition header over the URL path.
func FilenameFromResponse(header http.Header, reportURL string) string {
	if disposition := header.Get("Content-Disposition"); disposition != "" {
		if m := filenameRe.FindStringSubmatch(disposition); m != nil {
			name := m[1]
			if unescaped, err := url.QueryUnescape(name); err == nil {
				name = unescaped
			}
			if !strings.HasSuffix(name, ".pdf") {
				name += ".pdf"
			}
			return name
		}
	}

	if parsed, err := url.Parse(reportURL); err == nil {
		if name := path.Base(parsed.Path); strings.HasSuffix(name, ".pdf") {
			return name
		}
	}
	return "downloaded.pdf"
}
