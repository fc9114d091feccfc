package internal

import (
	"net/url"
	"strings"

	"mvdan.cc/xurls/v2"
)

const (
	msgMissingInput = "Please provide both API key and a URL."
	msgInvalidURL   = "Please enter a valid URL."
)

var strictURL = xurls.Strict()

// ValidateRequest checks the credential and URL before anything is fetched
func ValidateRequest(req Request) (*url.URL, error) {
	credential := strings.TrimSpace(req.Credential)
	rawURL := strings.TrimSpace(req.URL)
	if credential == "" || rawURL == "" {
		return nil, &ValidationError{Msg: msgMissingInput}
	}

	u, ok := ParseURL(rawURL)
	if !ok {
		return nil, &ValidationError{Msg: msgInvalidURL}
	}
	return u, nil
}

// ParseURL parses rawURL and reports whether it is a well-formed absolute web URL
func ParseURL(rawURL string) (*url.URL, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if strings.ContainsAny(rawURL, " \t\n") {
		return nil, false
	}

	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Hostname() == "" {
		return nil, false
	}

	// the whole input must be a single URL, not a URL embedded in other text
	if strictURL.FindString(rawURL) != rawURL {
		return nil, false
	}
	return u, true
}
