package instance

import (
	"os"

	"github.com/angelmondragon/lushka-backend/pkg/env"
)

// GetID identifies the running process in logs: an explicit instance id, the
// platform dyno name, the hostname, then "local".
func GetID() string {
	fallback := "local"
	if host, err := os.Hostname(); err == nil && host != "" {
		fallback = host
	}
	return env.First(fallback, "LUSHKA_INSTANCE_ID", "DYNO")
}
