// Package session holds the per-account authentication material for the quest
// platform and the rules for scoping it to a community subdomain.
package session

import (
	"net/http"
	"strings"
)

const (
	// RootSubdomain is the marker the platform stores in the subdomain cookie
	// for requests made from the main site.
	RootSubdomain = "root"

	subdomainPlaceholder = "{subdomain}"
	subdomainCookie      = "subdomain="
)

// Credential is an opaque bundle of headers proving authentication for one account.
// Header keys are kept lower-case. Values are never mutated in place.
type Credential struct {
	AccountID string            `json:"account_id"`
	Headers   map[string]string `json:"headers"`
	// SiteURL is the community site template, e.g. https://{subdomain}.crew3.xyz
	SiteURL string `json:"site_url,omitempty"`
}

// New builds a credential rooted at the main site.
func New(accountID string, headers map[string]string, siteURL string) Credential {
	c := Credential{AccountID: accountID, Headers: make(map[string]string, len(headers)+1), SiteURL: siteURL}
	for k, v := range headers {
		c.Headers[strings.ToLower(k)] = v
	}
	if _, ok := c.Headers["origin"]; !ok && siteURL != "" {
		c.Headers["origin"] = RootURL(siteURL)
	}
	return c
}

// Cookie returns the authentication cookie, empty when absent.
func (c Credential) Cookie() string {
	return c.Headers["cookie"]
}

// HasCookie reports whether the credential can authenticate at all.
func (c Credential) HasCookie() bool {
	return c.Cookie() != ""
}

// ForSubdomain returns a copy scoped to the community subdomain: origin and
// referer point at the community site and the cookie's subdomain marker is
// substituted. A credential without a cookie stays without one.
func (c Credential) ForSubdomain(subdomain string) Credential {
	out := c.clone()
	site := SubdomainURL(c.SiteURL, subdomain)
	out.Headers["origin"] = site
	out.Headers["referer"] = site
	if cookie := c.Cookie(); cookie != "" {
		out.Headers["cookie"] = strings.Replace(cookie, subdomainCookie+RootSubdomain, subdomainCookie+subdomain, 1)
	} else {
		delete(out.Headers, "cookie")
	}
	return out
}

// Apply copies the headers onto the request.
func (c Credential) Apply(req *http.Request) {
	for k, v := range c.Headers {
		if v == "" {
			continue
		}
		req.Header.Set(k, v)
	}
}

func (c Credential) clone() Credential {
	out := Credential{AccountID: c.AccountID, SiteURL: c.SiteURL, Headers: make(map[string]string, len(c.Headers)+2)}
	for k, v := range c.Headers {
		out.Headers[k] = v
	}
	return out
}

// SubdomainURL renders the community site URL for subdomain.
func SubdomainURL(siteURL, subdomain string) string {
	return strings.TrimRight(strings.ReplaceAll(siteURL, subdomainPlaceholder, subdomain), "/")
}

// RootURL renders the main site URL (the template without the subdomain label).
func RootURL(siteURL string) string {
	return strings.TrimRight(strings.ReplaceAll(siteURL, subdomainPlaceholder+".", ""), "/")
}
