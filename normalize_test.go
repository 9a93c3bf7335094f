package biweekly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Case Number", "Case Number"},
		{"newlines", "Project\nDescription", "Project Description"},
		{"runs of whitespace", "  1234   W   Adams\t Blvd ", "1234 W Adams Blvd"},
		{"newline and spaces", "Filing \n  Date", "Filing Date"},
		{"only whitespace", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanText(tt.in))
		})
	}
}
