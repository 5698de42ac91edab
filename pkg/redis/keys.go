package redis

import "strings"

const (
	keyNamespace  = "lushka"
	cartSegment   = "cart"
	windowSegment = "window"
	keySeparator  = ":"
)

// CartKey is the snapshot key for a session's cart, e.g.
// lushka:cart:<prefix>:<session>.
func (c *Client) CartKey(prefix, sessionID string) string {
	return joinKey(cartSegment, prefix, sessionID)
}

// WindowKey is the counter key for a rate-limit scope.
func (c *Client) WindowKey(scope string) string {
	return joinKey(windowSegment, scope)
}

func joinKey(parts ...string) string {
	var b strings.Builder
	b.WriteString(keyNamespace)
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			b.WriteString(keySeparator)
			b.WriteString(part)
		}
	}
	return b.String()
}
