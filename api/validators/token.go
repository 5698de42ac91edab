package validators

import (
	"errors"
	"strings"
)

var ErrMissingToken = errors.New("missing session token")

// SessionToken extracts the raw token from a plain header value or an
// Authorization "Bearer" value.
func SessionToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	lower := strings.ToLower(token)
	switch {
	case lower == "bearer":
		token = ""
	case strings.HasPrefix(lower, "bearer "):
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
