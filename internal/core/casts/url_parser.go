package casts

import (
	"net/url"
	"strings"
)

// ParseCastURL splits a cast URL into its username and hash prefix.
// The first path segment is the username and the second is the hash prefix;
// any further segments, the query and the fragment are ignored.
// Example: https://warpcast.com/dwr/0x1a2b3c -> {dwr, 0x1a2b3c}
func ParseCastURL(rawURL string) (Identifier, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Identifier{}, NewInvalidInputError("url", "URL cannot be empty")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return Identifier{}, NewInvalidInputError("url", "URL could not be parsed")
	}

	if parsedURL.Scheme != "https" && parsedURL.Scheme != "http" {
		return Identifier{}, NewInvalidInputError("url", "URL must use http or https")
	}
	if parsedURL.Host == "" {
		return Identifier{}, NewInvalidInputError("url", "URL must include a host")
	}

	// "/dwr/0x1a2b3c" -> ["", "dwr", "0x1a2b3c"]
	segments := strings.Split(parsedURL.Path, "/")
	if len(segments) < 3 {
		return Identifier{}, NewInvalidInputError("url", "expected format: https://{host}/{username}/{hash}")
	}

	return newIdentifier(segments[1], segments[2])
}

// IsCastURL reports whether rawURL can be split into a username and hash prefix
func IsCastURL(rawURL string) bool {
	_, err := ParseCastURL(rawURL)
	return err == nil
}

// NewIdentifier builds an Identifier from exactly one of the two accepted forms:
// a cast URL, or a username and hash prefix pair.
func NewIdentifier(rawURL, username, hashPrefix string) (Identifier, error) {
	hasURL := strings.TrimSpace(rawURL) != ""
	hasPair := strings.TrimSpace(username) != "" || strings.TrimSpace(hashPrefix) != ""

	switch {
	case hasURL && hasPair:
		return Identifier{}, NewInvalidInputError("url", "supply either a URL or a username and hash, not both")
	case hasURL:
		return ParseCastURL(rawURL)
	case hasPair:
		return newIdentifier(username, hashPrefix)
	default:
		return Identifier{}, NewInvalidInputError("url", "a URL or a username and hash is required")
	}
}

func newIdentifier(username, hashPrefix string) (Identifier, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	hashPrefix = strings.TrimSpace(hashPrefix)

	if username == "" {
		return Identifier{}, NewInvalidInputError("username", "username cannot be empty")
	}
	if hashPrefix == "" {
		return Identifier{}, NewInvalidInputError("hash", "hash cannot be empty")
	}
	if strings.ContainsAny(username, "/?# ") {
		return Identifier{}, NewInvalidInputError("username", "username contains invalid characters")
	}
	if strings.ContainsAny(hashPrefix, "/?# ") {
		return Identifier{}, NewInvalidInputError("hash", "hash contains invalid characters")
	}

	return Identifier{Username: username, HashPrefix: hashPrefix}, nil
}
