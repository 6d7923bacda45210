package sanitize

import (
	"net/url"
	"strings"
)

const paramPlaceholder = "[REDACTED]"

// sensitiveParams is the closed list of query parameter names whose values
// are replaced by Query. Matching is case-insensitive.
var sensitiveParams = map[string]bool{
	"token":         true,
	"access_token":  true,
	"refresh_token": true,
	"id_token":      true,
	"auth":          true,
	"authorization": true,
	"api_key":       true,
	"apikey":        true,
	"key":           true,
	"secret":        true,
	"password":      true,
	"passwd":        true,
	"pwd":           true,
	"session":       true,
	"sessionid":     true,
	"session_id":    true,
	"sid":           true,
	"code":          true,
	"state":         true,
	"email":         true,
	"user":          true,
	"username":      true,
	"phone":         true,
	"ssn":           true,
}

// URL sanitizes one URL. The query string and fragment are dropped entirely
// and the path is run through Text, so the result is origin plus sanitized
// path only. Inputs that do not parse as absolute URLs fall back to plain
// text sanitization of the raw string.
func (s *Sanitizer) URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return s.Text(raw)
	}
	return u.Scheme + "://" + u.Host + s.Text(u.EscapedPath())
}

// Query replaces the values of sensitive parameters with a placeholder,
// leaving the rest untouched. URL keeps the stricter drop-everything policy;
// this is for callers that must preserve a query string (diagnostics, logs).
func (s *Sanitizer) Query(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for name, values := range q {
		if sensitiveParams[strings.ToLower(name)] {
			out[name] = []string{paramPlaceholder}
			continue
		}
		sanitized := make([]string, len(values))
		for i, v := range values {
			sanitized[i] = s.Text(v)
		}
		out[name] = sanitized
	}
	return out
}
