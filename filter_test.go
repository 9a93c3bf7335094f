package biweekly_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/planningdata/biweekly"
)

func TestDateRange_Filter(t *testing.T) {
	links := []biweekly.DocumentLink{
		{URL: "https://example.com/a.pdf", Date: "01/15/2023"},
		{URL: "https://example.com/b.pdf", Date: "06/01/2023"},
		{URL: "https://example.com/c.pdf", Date: "11/30/2024"},
		{URL: "https://example.com/d.pdf", Date: "not-a-date"},
	}

	t.Run("open range keeps every valid entry", func(t *testing.T) {
		kept := biweekly.DateRange{}.Filter(links, nil)
		assert.Len(t, kept, 3)
	})

	t.Run("year bounds are inclusive", func(t *testing.T) {
		kept := biweekly.DateRange{StartYear: 2023, EndYear: 2023}.Filter(links, nil)
		assert.Len(t, kept, 2)
	})

	t.Run("month bounds are inclusive", func(t *testing.T) {
		kept := biweekly.DateRange{StartMonth: time.June, EndMonth: time.December}.Filter(links, nil)
		assert.Len(t, kept, 2)
		assert.Equal(t, "https://example.com/b.pdf", kept[0].URL)
	})

	t.Run("malformed dates are dropped not fatal", func(t *testing.T) {
		kept := biweekly.DateRange{}.Filter([]biweekly.DocumentLink{
			{URL: "https://example.com/bad.pdf", Date: "2023-01-15"},
		}, nil)
		assert.Empty(t, kept)
	})
}
