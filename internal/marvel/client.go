package marvel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public gateway.
	DefaultBaseURL = "https://gateway.marvel.com:443"

	charactersPath = "/v1/public/characters"
	pageSize       = 100
)

// Credentials are the API key pair issued by the developer portal.
type Credentials struct {
	PublicKey  string
	PrivateKey string
}

// Client fetches characters from the Marvel API.
type Client struct {
	creds      Credentials
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another host (tests, proxies).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithClock overrides the timestamp source used for signing.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient returns a client for the characters endpoint signed with creds.
func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		creds:   creds,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CharactersURL builds the signed request URL.
func (c *Client) CharactersURL() (string, error) {
	if c.creds.PublicKey == "" || c.creds.PrivateKey == "" {
		return "", newFetchError(ErrKindInvalidURL, 0, fmt.Errorf("missing api keys"))
	}
	base, err := url.Parse(c.baseURL + charactersPath)
	if err != nil || base.Scheme == "" || base.Host == "" {
		if err == nil {
			err = fmt.Errorf("base url %q has no scheme or host", c.baseURL)
		}
		return "", newFetchError(ErrKindInvalidURL, 0, err)
	}

	ts := strconv.FormatInt(c.now().Unix(), 10)
	query := url.Values{}
	query.Set("apikey", c.creds.PublicKey)
	query.Set("hash", Sign(ts, c.creds.PrivateKey, c.creds.PublicKey))
	query.Set("ts", ts)
	query.Set("limit", strconv.Itoa(pageSize))
	base.RawQuery = query.Encode()
	return base.String(), nil
}

// FetchCharacters issues a single signed GET and decodes the envelope.
// Every failure is a *FetchError.
func (c *Client) FetchCharacters(ctx context.Context) (*CharacterResponse, error) {
	reqURL, err := c.CharactersURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, newFetchError(ErrKindInvalidURL, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newFetchError(ErrKindExecution, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newFetchError(ErrKindInvalidResponse, resp.StatusCode, err)
	}
	body = bytes.TrimSpace(body)

	switch resp.StatusCode {
	case http.StatusOK:
		if len(body) == 0 {
			return nil, newFetchError(ErrKindInvalidData, resp.StatusCode, nil)
		}
		var out CharacterResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, newFetchError(ErrKindInvalidDecode, resp.StatusCode, err)
		}
		return &out, nil
	case http.StatusConflict:
		if len(body) == 0 {
			return nil, newFetchError(ErrKindUnknown, resp.StatusCode, nil)
		}
		var apiErr errorBody
		if err := json.Unmarshal(body, &apiErr); err != nil {
			return nil, newFetchError(ErrKindInvalidDecode, resp.StatusCode, err)
		}
		fe := newFetchError(ErrKindConnection, resp.StatusCode, nil)
		fe.Message = apiErr.Message
		if fe.Message == "" {
			fe.Message = string(apiErr.Code)
		}
		return nil, fe
	default:
		return nil, newFetchError(ErrKindUnknown, resp.StatusCode, nil)
	}
}
