package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"go-crimewatch/types"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	selectColumns = "id, case_number, block, primary_type, description, location_description, arrest, date, community_area, fbi_code, year, latitude, longitude"
	sodaDateFmt   = "2006-01-02T15:04:05.000"
)

// Client talks to a Socrata SODA endpoint and returns raw incident rows.
type Client struct {
	host       string
	dataset    string
	appToken   string
	httpClient *http.Client
}

// NewClient builds a client for the given host (scheme included) and
// dataset id. The app token is optional; without one the public rate
// limits apply.
func NewClient(host, dataset, appToken string) *Client {
	return &Client{
		host:     strings.TrimRight(host, "/"),
		dataset:  dataset,
		appToken: appToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Query describes one incident fetch. Category and AreaCode are matched
// exactly server-side; an empty AreaCode fetches citywide.
type Query struct {
	Category string
	AreaCode string
	Start    time.Time
	End      time.Time
	Limit    int
}

// FetchIncidents runs the SoQL query and decodes the JSON array of rows.
func (c *Client) FetchIncidents(ctx context.Context, q Query) ([]types.RawIncident, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 250000
	}

	params := url.Values{}
	params.Set("$select", selectColumns)
	params.Set("$where", buildWhere(q))
	params.Set("$limit", fmt.Sprintf("%d", limit))
	params.Set("$order", "date DESC")

	endpoint := fmt.Sprintf("%s/resource/%s.json?%s", c.host, c.dataset, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching incidents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SODA endpoint returned status: %s", resp.Status)
	}

	var incidents []types.RawIncident
	if err := json.NewDecoder(resp.Body).Decode(&incidents); err != nil {
		return nil, fmt.Errorf("decoding incidents: %w", err)
	}

	return incidents, nil
}

// buildWhere assembles the SoQL where clause the dashboard has always
// used: an open date window plus exact category and area matches.
func buildWhere(q Query) string {
	clauses := []string{
		fmt.Sprintf("date > '%s'", q.Start.Format(sodaDateFmt)),
		fmt.Sprintf("date < '%s'", q.End.Format(sodaDateFmt)),
		fmt.Sprintf("primary_type = '%s'", escapeSoQL(q.Category)),
	}
	if q.AreaCode != "" {
		clauses = append(clauses, fmt.Sprintf("community_area = '%s'", escapeSoQL(q.AreaCode)))
	}
	return strings.Join(clauses, " AND ")
}

// SoQL string literals escape single quotes by doubling them.
func escapeSoQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
