package biweekly

import "strings"

// findHeaderRow scans a table top to bottom for the first header-looking row
// that resolves at least one canonical column. Returns -1 and an empty
// mapping when no row qualifies.
func findHeaderRow(table RawTable) (int, ColumnMapping) {
	for i, row := range table {
		if !isHeaderRow(row) {
			continue
		}
		if mapping := buildColumnMapping(row); len(mapping) > 0 {
			return i, mapping
		}
	}
	return -1, ColumnMapping{}
}

// Processor turns one raw table into normalized records.
type Processor struct {
	Kind      ReportKind
	SourceURL string
}

// Process converts the data rows of a table into records. With a nil or
// empty mapping the table is scanned for its own header row; rows above the
// header and the header itself are not data. With an inherited mapping every
// row is a data candidate. The returned mapping is the one actually used so
// the caller can carry it into continuation tables.
//
// A table whose header cannot be resolved yields no records and an empty
// mapping; that is a per-table condition, not an error.
func (p *Processor) Process(table RawTable, mapping ColumnMapping, group string) ([]Record, ColumnMapping) {
	start := 0
	if len(mapping) == 0 {
		headerIdx, found := findHeaderRow(table)
		if headerIdx == -1 {
			return nil, ColumnMapping{}
		}
		mapping = found
		start = headerIdx + 1
	}

	// The final row is a footer by layout convention and is never data.
	var records []Record
	for i := start; i < len(table)-1; i++ {
		row := table[i]
		if isBlankRow(row) || isHeaderRow(row) {
			continue
		}
		if isGroupTitleRow(row, p.Kind) || isSummaryRow(row) {
			continue
		}
		records = append(records, p.buildRecord(row, mapping, group))
	}

	return records, mapping
}

// buildRecord maps one surviving data row onto the canonical schema.
func (p *Processor) buildRecord(row []string, mapping ColumnMapping, group string) Record {
	rec := NewRecord()

	switch p.Kind {
	case KindCouncil:
		rec[ColCNC] = group
	default:
		rec[ColDistrict] = group
	}
	if p.SourceURL != "" {
		rec[ColSourceURL] = p.SourceURL
	}

	for i, cell := range row {
		col, ok := mapping[i]
		if !ok {
			continue
		}
		value := cleanText(cell)
		if col == ColDistrict {
			value = sanitizeDistrict(value)
		}
		rec[col] = value
	}

	if isADU(strings.ToLower(rec[ColDescription])) {
		rec[ColIsADU] = "true"
	} else {
		rec[ColIsADU] = "false"
	}

	return rec
}
