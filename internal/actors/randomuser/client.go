package randomuser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rbroggi/randomusersvc/internal/core/model"
	"github.com/rbroggi/randomusersvc/internal/core/ports"
)

// Client is the HTTP adapter towards the random-user endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientArgs are the mandatory arguments for the creation of a Client.
type ClientArgs struct {
	// BaseURL is the endpoint base, e.g. "https://randomuser.me/api/".
	BaseURL string
}

// ClientOptArgs are the optional arguments for building a Client.
type ClientOptArgs = func(*Client)

// WithHTTPClient overrides the underlying http.Client. Timeout policy
// belongs to that client, not to this adapter.
func WithHTTPClient(httpClient *http.Client) ClientOptArgs {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Client.
func NewClient(args ClientArgs, optArgs ...ClientOptArgs) (*Client, error) {
	if args.BaseURL == "" {
		return nil, errors.New("base URL is empty")
	}
	c := &Client{baseURL: args.BaseURL, httpClient: http.DefaultClient}
	for _, opt := range optArgs {
		opt(c)
	}
	return c, nil
}

// Random draws one random profile. The gender and nat query parameters are
// sent only when the corresponding filter is set. Transport failures wrap
// model.ErrUnreachable, non-2xx statuses become *model.StatusError, and a
// body that does not decode is a plain error.
func (c *Client) Random(ctx context.Context, query ports.RandomQuery) (*ports.RandomResult, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	q := u.Query()
	if query.Gender != "" {
		q.Set("gender", query.Gender)
	}
	if query.Nationality != "" {
		q.Set("nat", query.Nationality)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.StatusError{Status: resp.StatusCode}
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	return &ports.RandomResult{Users: body.Results, Info: body.Info}, nil
}

// response is the wire shape of the random-user endpoint.
type response struct {
	Results []model.RemoteUser `json:"results"`
	Info    *model.SourceInfo  `json:"info"`
}
