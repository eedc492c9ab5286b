package gerrit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bjulian5/goaltools/internal/remote"
)

// DefaultURL is the base URL of the review service REST API
const DefaultURL = "https://review.openstack.org/"

// QueryOptions are requested for every change so the review model has the
// revisions, accounts and labels it needs.
var QueryOptions = []string{
	"ALL_REVISIONS",
	"REVIEWER_UPDATES",
	"DETAILED_ACCOUNTS",
	"CURRENT_COMMIT",
	"LABELS",
	"DETAILED_LABELS",
}

// xssiPrefix is prepended to every JSON response by the review service
var xssiPrefix = []byte(")]}'")

// Client reads changes from the review service REST API
type Client struct {
	baseURL string
	getter  remote.Getter
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, getter remote.Getter) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{baseURL: baseURL, getter: getter}
}

// BaseURL returns the API root, always ending in a slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ChangeDetail fetches the detail document for one change
func (c *Client) ChangeDetail(ctx context.Context, id string) (json.RawMessage, error) {
	params := url.Values{"o": QueryOptions}
	body, err := c.query(ctx, "changes/"+url.PathEscape(id)+"/detail", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review %s: %w", id, err)
	}
	return json.RawMessage(body), nil
}

// QueryChanges fetches one page of changes matching query
func (c *Client) QueryChanges(ctx context.Context, query string, start, limit int) ([]json.RawMessage, error) {
	params := url.Values{
		"n":     {strconv.Itoa(limit)},
		"start": {strconv.Itoa(start)},
		"q":     {query},
		"o":     QueryOptions,
	}
	body, err := c.query(ctx, "changes/", params)
	if err != nil {
		return nil, fmt.Errorf("failed to query %q at offset %d: %w", query, start, err)
	}

	var changes []json.RawMessage
	if err := json.Unmarshal(body, &changes); err != nil {
		return nil, fmt.Errorf("failed to parse change list: %w", err)
	}
	return changes, nil
}

// query fetches method relative to the API root and strips the XSSI prefix
func (c *Client) query(ctx context.Context, method string, params url.Values) ([]byte, error) {
	body, err := c.getter.Get(ctx, c.baseURL+method, params, "application/json")
	if err != nil {
		return nil, err
	}
	return stripXSSI(body), nil
}

func stripXSSI(body []byte) []byte {
	body = bytes.TrimLeft(body, " \t\r\n")
	if rest, ok := bytes.CutPrefix(body, xssiPrefix); ok {
		return bytes.TrimLeft(rest, " \t\r\n")
	}
	return body
}
