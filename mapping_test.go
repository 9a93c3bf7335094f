package biweekly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapColumnName(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"exact match", "Case Number", ColCaseNumber},
		{"exact match case folded", "FILING DATE", ColFilingDate},
		{"substring match", "Case Number / Prefix", ColCaseNumber},
		{"multiline header", "Project\nDescription", ColDescription},
		{"short synonym", "Request", ColRequestType},
		{"unknown", "Zoning Administrator", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapColumnName(tt.header))
		})
	}
}

// Exact lookup always beats substring containment, and among substring
// candidates the longest synonym wins, so the pick never depends on map
// iteration order.
func TestMapColumnName_Priority(t *testing.T) {
	// "case" (exact) maps to Case Number even though "case" is also a
	// substring of other synonyms' labels.
	assert.Equal(t, ColCaseNumber, mapColumnName("case"))

	// Contains both "applicant contact" and its shorter synonyms
	// "applicant" and "contact"; the longest synonym decides.
	assert.Equal(t, ColApplicant, mapColumnName("Applicant Contact Info"))

	// Contains "community plan area" and "community plan".
	assert.Equal(t, ColPlanArea, mapColumnName("Community Plan Area Name"))
}

func TestBuildColumnMapping(t *testing.T) {
	row := []string{"Filing Date", "Case Number", "", "Mystery", "Address"}
	mapping := buildColumnMapping(row)

	assert.Equal(t, ColumnMapping{
		0: ColFilingDate,
		1: ColCaseNumber,
		4: ColAddress,
	}, mapping)

	// Unresolved indices are absent, never stored empty.
	_, ok := mapping[3]
	assert.False(t, ok)
}
