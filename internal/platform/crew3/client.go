// Package crew3 is the HTTP adapter for the Crew3 quest platform API.
package crew3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/pacing"
	"github.com/open-builders/questbot/internal/session"
)

const maxBodySize = 4 << 20

// Options configures every client produced by a Factory.
type Options struct {
	APIURL  string
	SiteURL string
	// ClaimToken is the operator supplied anti-automation token sent with claims.
	ClaimToken string
	UserAgent  string
	Timeout    time.Duration
	// PagePacing is the base delay between community listing pages.
	PagePacing time.Duration
}

// Factory builds per-account clients sharing one HTTP transport.
type Factory struct {
	opts       Options
	httpClient *http.Client
	pacer      pacing.Pacer
	logger     zerolog.Logger
}

func NewFactory(opts Options, pacer pacing.Pacer, logger zerolog.Logger) *Factory {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if !strings.HasSuffix(opts.APIURL, "/") {
		opts.APIURL += "/"
	}
	return &Factory{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
		pacer:      pacer,
		logger:     logger,
	}
}

// For returns a client acting as the credential's account.
func (f *Factory) For(cred session.Credential) *Client {
	if cred.SiteURL == "" {
		cred.SiteURL = f.opts.SiteURL
	}
	if cred.Headers == nil {
		cred.Headers = map[string]string{}
	}
	if _, ok := cred.Headers["origin"]; !ok {
		cred.Headers["origin"] = session.RootURL(cred.SiteURL)
	}
	return &Client{
		httpClient: f.httpClient,
		opts:       f.opts,
		cred:       cred,
		pacer:      f.pacer,
		logger:     f.logger.With().Str("account_id", cred.AccountID).Logger(),
	}
}

// Anonymous returns a client without authentication, good for public listings.
func (f *Factory) Anonymous() *Client {
	return f.For(session.Credential{})
}

// Client performs platform calls on behalf of one account.
type Client struct {
	httpClient *http.Client
	opts       Options
	cred       session.Credential
	pacer      pacing.Pacer
	logger     zerolog.Logger
}

// AccountID is the id of the account this client acts for, empty when anonymous.
func (c *Client) AccountID() string {
	return c.cred.AccountID
}

// SiteURL renders the community site URL.
func (c *Client) SiteURL(subdomain string) string {
	return session.SubdomainURL(c.cred.SiteURL, subdomain)
}

type request struct {
	method      string
	endpoint    string // relative to the API URL unless absolute
	subdomain   string // scope headers to this community when set
	body        io.Reader
	contentType string
}

func (c *Client) url(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return c.opts.APIURL + strings.TrimLeft(endpoint, "/")
}

func (c *Client) do(ctx context.Context, op string, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r.endpoint), r.body)
	if err != nil {
		return apperrors.NewTransportError(op, err)
	}

	cred := c.cred
	if r.subdomain != "" {
		cred = cred.ForSubdomain(r.subdomain)
	}
	cred.Apply(req)
	if req.Header.Get("User-Agent") == "" && c.opts.UserAgent != "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return apperrors.NewTransportError(op, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return parseAPIError(resp.StatusCode, body)
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewTransportError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) get(ctx context.Context, op, endpoint, subdomain string, out any) error {
	return c.do(ctx, op, request{method: http.MethodGet, endpoint: endpoint, subdomain: subdomain}, out)
}

func (c *Client) postJSON(ctx context.Context, op, endpoint, subdomain string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return apperrors.NewTransportError(op, err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, op, request{
		method:      http.MethodPost,
		endpoint:    endpoint,
		subdomain:   subdomain,
		body:        body,
		contentType: "application/json",
	}, out)
}
