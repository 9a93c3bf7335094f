package biweekly_test

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planningdata/biweekly"
)

func recordWith(fields map[string]string) biweekly.Record {
	rec := biweekly.NewRecord()
	for k, v := range fields {
		rec[k] = v
	}
	return rec
}

func TestWriteRecords_HeaderAlways(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, biweekly.WriteRecords(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, biweekly.Schema, rows[0])
}

func TestWriteRecords_SchemaOrder(t *testing.T) {
	var buf bytes.Buffer
	rec := recordWith(map[string]string{
		biweekly.ColDistrict:   "07",
		biweekly.ColCaseNumber: "ZA-2024-0001",
		biweekly.ColIsADU:      "false",
	})
	require.NoError(t, biweekly.WriteRecords(&buf, []biweekly.Record{rec}))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, biweekly.Schema, rows[0])
	// The district value round-trips as text, leading zero intact.
	assert.Equal(t, "07", rows[1][0])
	assert.Equal(t, "ZA-2024-0001", rows[1][2])
}

func TestCombineReports(t *testing.T) {
	dir := t.TempDir()

	pathA := filepath.Join(dir, "a.csv")
	require.NoError(t, biweekly.WriteRecordsFile(pathA, []biweekly.Record{
		recordWith(map[string]string{biweekly.ColDistrict: "1", biweekly.ColCaseNumber: "A-1"}),
		recordWith(map[string]string{biweekly.ColDistrict: "1", biweekly.ColCaseNumber: "A-2"}),
	}))

	pathB := filepath.Join(dir, "b.csv")
	require.NoError(t, biweekly.WriteRecordsFile(pathB, []biweekly.Record{
		recordWith(map[string]string{biweekly.ColDistrict: "09", biweekly.ColCaseNumber: "B-1"}),
	}))

	var buf bytes.Buffer
	require.NoError(t, biweekly.CombineReports(&buf, []string{pathA, pathB}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // one header + three rows

	assert.Equal(t, biweekly.Schema, rows[0])
	assert.Equal(t, "A-1", rows[1][2])
	assert.Equal(t, "A-2", rows[2][2])
	assert.Equal(t, "B-1", rows[3][2])
	// Single-digit and leading-zero districts survive concatenation.
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "09", rows[3][0])
}
