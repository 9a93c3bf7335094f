package biweekly

import (
	"log/slog"
	"time"
)

const listingDateLayout = "01/02/2006" // MM/DD/YYYY

// DateRange is an inclusive year and month window applied to listing entries
// before anything is downloaded. Zero bounds leave that side open.
type DateRange struct {
	StartYear  int
	EndYear    int
	StartMonth time.Month
	EndMonth   time.Month
}

// Filter keeps the links whose report date falls inside the range. Links
// with malformed dates are logged and dropped, never fatal.
func (r DateRange) Filter(links []DocumentLink, logger *slog.Logger) []DocumentLink {
	if logger == nil {
		logger = slog.Default()
	}

	kept := make([]DocumentLink, 0, len(links))
	for _, link := range links {
		date, err := time.Parse(listingDateLayout, link.Date)
		if err != nil {
			logger.Warn("dropping listing entry with malformed date", "date", link.Date, "url", link.URL)
			continue
		}
		if r.contains(date) {
			kept = append(kept, link)
		}
	}
	return kept
}

func (r DateRange) contains(date time.Time) bool {
	if r.StartYear != 0 && date.Year() < r.StartYear {
		return false
	}
	if r.EndYear != 0 && date.Year() > r.EndYear {
		return false
	}
	if r.StartMonth != 0 && date.Month() < r.StartMonth {
		return false
	}
	if r.EndMonth != 0 && date.Month() > r.EndMonth {
		return false
	}
	return true
}
