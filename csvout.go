package biweekly

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
)

// WriteRecords writes records as CSV with the full canonical schema as the
// header row. The header is written even when there are no records, so every
// output file carries the same column set in the same order. Values are
// written verbatim: a sanitized district like "7" or a leading-zero case
// number survives as text.
func WriteRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Schema); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	for _, rec := range records {
		if err := cw.Write(rec.Values()); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush CSV")
}

// WriteRecordsFile writes records to a CSV file at path.
func WriteRecordsFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	if err := WriteRecords(f, records); err != nil {
		return err
	}
	return errors.Wrapf(f.Close(), "failed to close %s", path)
}

// CombineReports concatenates per-report CSV files into one combined CSV
// under a single schema header. Every input carries the identical column
// set, so rows are joined as-is; each file's own header row is skipped.
func CombineReports(w io.Writer, paths []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Schema); err != nil {
		return errors.Wrap(err, "failed to write combined header")
	}

	for _, path := range paths {
		if err := appendReport(cw, path); err != nil {
			return err
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush combined CSV")
}

func appendReport(cw *csv.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		if first {
			first = false
			continue
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "failed to append row from %s", path)
		}
	}
}
