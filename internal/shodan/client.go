// internal/shodan/client.go
package shodan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/DM20911/Shodan-AI/internal/core"
)

// DefaultHTTPClient is used for all API calls. Tests swap it for an httptest
// server client.
var DefaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

const defaultBaseURL = "https://api.shodan.io"

// Client talks to the Shodan REST API.
type Client struct {
	APIKey  string
	BaseURL string
}

func NewClient(apiKey string) *Client {
	return &Client{APIKey: apiKey, BaseURL: defaultBaseURL}
}

// Match is a single banner from a search response. Only the fields the tool
// renders are decoded.
type Match struct {
	IPStr     string   `json:"ip_str"`
	Port      int      `json:"port"`
	Transport string   `json:"transport"`
	Org       string   `json:"org"`
	Product   string   `json:"product"`
	Hostnames []string `json:"hostnames"`
	Location  struct {
		CountryName string `json:"country_name"`
		City        string `json:"city"`
	} `json:"location"`
}

// SearchResult is the response of /shodan/host/search.
type SearchResult struct {
	Total   int     `json:"total"`
	Matches []Match `json:"matches"`
}

// HostInfo is the response of /shodan/host/{ip}.
type HostInfo struct {
	IPStr     string   `json:"ip_str"`
	Hostnames []string `json:"hostnames"`
	Ports     []int    `json:"ports"`
	Org       string   `json:"org"`
	ISP       string   `json:"isp"`
	OS        string   `json:"os"`
}

// APIInfo is the response of /api-info, used to validate a key.
type APIInfo struct {
	Plan         string `json:"plan"`
	QueryCredits int    `json:"query_credits"`
	ScanCredits  int    `json:"scan_credits"`
}

// apiError is Shodan's error envelope on non-200 responses.
type apiError struct {
	Error string `json:"error"`
}

// Search runs a query against /shodan/host/search. Errors are surfaced
// directly; there are no retries, one invocation means one request per page.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("key", c.APIKey)
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var result SearchResult
	if err := c.get(ctx, "/shodan/host/search", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Host looks up everything Shodan knows about a single IP.
func (c *Client) Host(ctx context.Context, ip string) (*HostInfo, error) {
	params := url.Values{}
	params.Set("key", c.APIKey)

	var info HostInfo
	if err := c.get(ctx, "/shodan/host/"+url.PathEscape(ip), params, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// APIInfoCheck verifies the configured key and reports plan and credits.
func (c *Client) APIInfoCheck(ctx context.Context) (*APIInfo, error) {
	params := url.Values{}
	params.Set("key", c.APIKey)

	var info APIInfo
	if err := c.get(ctx, "/api-info", params, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.BaseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	resp, err := DefaultHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Shodan response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Shodan reports the real reason in an {"error": "..."} body.
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%w: %s", core.ErrAPIError, apiErr.Error)
		}
		return fmt.Errorf("%w: %s", core.ErrAPIError, resp.Status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse Shodan response: %w", err)
	}
	return nil
}
