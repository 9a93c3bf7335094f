package biweekly

import (
	"regexp"
	"strings"
)

// headerTerms are the words that mark a row as a likely column-header row.
// Detection is a substring heuristic and tolerates false positives; callers
// must cope with rows that merely look like headers.
var headerTerms = []string{
	"date", "case", "address", "cnc", "community",
	"project", "request", "applicant", "contact",
}

// GroupUnknown is returned when a title cell carries no recognizable group.
const GroupUnknown = "Unknown"

var (
	districtTitleRe = regexp.MustCompile(`Council District\s*--\s*(\d+)`)
	councilTitleRe  = regexp.MustCompile(`Neighborhood Council\s*--\s*(\S.*)`)
)

// isHeaderRow reports whether a row of cells looks like a column-header row.
// An all-empty row is never a header.
func isHeaderRow(row []string) bool {
	var parts []string
	for _, cell := range row {
		if cell != "" {
			parts = append(parts, strings.ToLower(cell))
		}
	}
	if len(parts) == 0 {
		return false
	}
	rowText := strings.Join(parts, " ")
	for _, term := range headerTerms {
		if strings.Contains(rowText, term) {
			return true
		}
	}
	return false
}

// hasHeaderRow reports whether any row of the table classifies as a header.
func hasHeaderRow(table RawTable) bool {
	for _, row := range table {
		if isHeaderRow(row) {
			return true
		}
	}
	return false
}

// groupTitleRe returns the title pattern for a report kind.
func groupTitleRe(kind ReportKind) *regexp.Regexp {
	if kind == KindCouncil {
		return councilTitleRe
	}
	return districtTitleRe
}

// isGroupTitle reports whether a title cell names a new group for the kind.
func isGroupTitle(text string, kind ReportKind) bool {
	return groupTitleRe(kind).MatchString(text)
}

// extractGroupKey pulls the group key (district number or council name) out
// of a table title cell. Returns GroupUnknown when the pattern does not match.
func extractGroupKey(title string, kind ReportKind) string {
	m := groupTitleRe(kind).FindStringSubmatch(title)
	if m == nil {
		return GroupUnknown
	}
	return strings.TrimSpace(m[1])
}

// isBlankRow reports whether every cell in the row is empty.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// isGroupTitleRow reports whether a data row is really a stray group-title
// row: a matching title in the first cell with nothing else in the row.
// Extraction sometimes renders missing cells as the literal "none".
func isGroupTitleRow(row []string, kind ReportKind) bool {
	if len(row) < 2 || !isGroupTitle(row[0], kind) {
		return false
	}
	for _, cell := range row[1:] {
		if cell != "" && strings.ToLower(cell) != "none" {
			return false
		}
	}
	return true
}

// isSummaryRow reports whether a row is a trailing record-count marker such
// as "Total Records: 124".
func isSummaryRow(row []string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), "records:") {
			return true
		}
	}
	return false
}
