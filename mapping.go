package biweekly

import "strings"

// columnSynonyms maps header wording seen in the reports to canonical column
// names. Lookup is exact-match first, then substring containment.
var columnSynonyms = map[string]string{
	"filing date":         ColFilingDate,
	"case number":         ColCaseNumber,
	"case":                ColCaseNumber,
	"address":             ColAddress,
	"cnc":                 ColCNC,
	"community plan area": ColPlanArea,
	"community plan":      ColPlanArea,
	"project description": ColDescription,
	"description":         ColDescription,
	"request type":        ColRequestType,
	"request":             ColRequestType,
	"applicant contact":   ColApplicant,
	"applicant":           ColApplicant,
	"contact":             ColApplicant,
}

// mapColumnName resolves a raw header label to a canonical column name.
// The substring pass picks the longest matching synonym so that e.g.
// "case number" wins over "case"; map iteration order never decides.
// Returns "" when nothing matches.
func mapColumnName(header string) string {
	label := strings.ToLower(cleanText(header))
	if label == "" {
		return ""
	}

	if canonical, ok := columnSynonyms[label]; ok {
		return canonical
	}

	var best string
	var bestLen int
	for synonym, canonical := range columnSynonyms {
		if strings.Contains(label, synonym) && len(synonym) > bestLen {
			best = canonical
			bestLen = len(synonym)
		}
	}
	return best
}

// buildColumnMapping maps each resolvable cell of a header row to its
// canonical column. Indices with no match are absent from the result.
func buildColumnMapping(row []string) ColumnMapping {
	mapping := make(ColumnMapping)
	for i, cell := range row {
		if cell == "" {
			continue
		}
		if canonical := mapColumnName(cell); canonical != "" {
			mapping[i] = canonical
		}
	}
	return mapping
}
