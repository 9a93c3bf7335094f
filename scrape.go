package biweekly

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the planning department site the reports are served from.
const DefaultBaseURL = "https://planning.lacity.gov"

// listingResponse is the shape of the biweekly-case listing endpoint.
type listingResponse struct {
	Entries []DocumentLink `json:"Entries"`
}

// Client queries the planning department's report listing API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns an API client for the given site. A nil httpClient uses
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// ListReports returns the report links published for one year of one report
// kind, in the order the API lists them. Entries missing either field are
// dropped.
func (c *Client) ListReports(ctx context.Context, kind ReportKind, year int) ([]DocumentLink, error) {
	url := fmt.Sprintf("%s/dcpapi/general/biweeklycase/%s/%d", c.baseURL, kind, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build listing request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query listing API for year %d", year)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("listing API returned status %d for year %d", resp.StatusCode, year)
	}

	var listing listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, errors.Wrap(err, "failed to decode listing response")
	}

	links := make([]DocumentLink, 0, len(listing.Entries))
	for _, entry := range listing.Entries {
		if entry.URL == "" || entry.Date == "" {
			continue
		}
		links = append(links, entry)
	}

	return links, nil
}
