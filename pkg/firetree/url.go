package firetree

import (
	"net/url"
	"strings"
)

// normalizeBaseURI trims surrounding whitespace and guarantees exactly one
// trailing slash, so repeated normalization is a no-op.
func normalizeBaseURI(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &ConfigError{Reason: "base URI must not be empty"}
	}
	if _, err := url.Parse(raw); err != nil {
		return "", &ConfigError{Reason: "base URI is not a valid URL: " + err.Error()}
	}
	return strings.TrimRight(raw, "/") + "/", nil
}

// endpointURL maps a document path to its REST endpoint: leading slashes
// are stripped, the JSON suffix appended, and the auth token injected as a
// query parameter. A caller-supplied auth parameter wins over the token.
func (c *Client) endpointURL(path string, query map[string]string) string {
	target := c.baseURI + strings.TrimLeft(path, "/") + jsonSuffix

	q := url.Values{}
	if c.token != "" {
		q.Set(authParam, c.token)
	}
	for k, v := range query {
		q.Set(k, v)
	}
	if len(q) == 0 {
		return target
	}
	return target + "?" + q.Encode()
}

// RedactURL masks the auth token in a document store URL so the value is
// safe to log or publish.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if !q.Has(authParam) {
		return raw
	}
	q.Set(authParam, "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}
