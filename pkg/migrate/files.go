package migrate

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var (
	fileNameRe = regexp.MustCompile(`^(\d{14})_([a-z0-9_]+)\.sql$`)
	slugRe     = regexp.MustCompile(`[^a-z0-9]+`)
)

// Migrations run against postgres in deployment and sqlite in dev and
// tests, so statements must stay inside the shared SQL subset.
var nonPortable = []string{"JSONB", "SERIAL", "::", "GEN_RANDOM_UUID", "TIMESTAMPTZ", "ILIKE"}

const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- revert %[1]s
-- +goose StatementEnd
`

// CreateSQLMigration writes an empty goose migration named
// <dir>/<version>_<slug>.sql, where version is now in UTC.
func CreateSQLMigration(dir, name string, now time.Time) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("dir is required")
	}
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		return "", fmt.Errorf("migration name %q has no usable characters", name)
	}
	if now.IsZero() {
		now = time.Now()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations dir %q: %w", dir, err)
	}
	path := filepath.Join(dir, now.UTC().Format(versionLayout)+"_"+slug+".sql")

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("migration already exists: %s", path)
		}
		return "", fmt.Errorf("create migration %q: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, migrationTemplate, slug); err != nil {
		return "", fmt.Errorf("write migration %q: %w", path, err)
	}
	return path, nil
}

// ValidateDir checks every .sql file in dir: naming, unique versions, an Up
// and a Down section, balanced statement blocks and portable SQL.
func ValidateDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("dir is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir %q: %w", dir, err)
	}

	versions := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".sql" {
			continue
		}
		m := fileNameRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("migration %q: expected <%s>_<name>.sql", name, versionLayout)
		}
		if _, err := time.Parse(versionLayout, m[1]); err != nil {
			return fmt.Errorf("migration %q: version is not a timestamp", name)
		}
		if prev, dup := versions[m[1]]; dup {
			return fmt.Errorf("migrations %q and %q share version %s", prev, name, m[1])
		}
		versions[m[1]] = name

		body, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read migration %q: %w", name, err)
		}
		if err := checkMigrationBody(body); err != nil {
			return fmt.Errorf("migration %q: %w", name, err)
		}
	}
	return nil
}

func checkMigrationBody(body []byte) error {
	var up, down bool
	open := 0

	scanner := bufio.NewScanner(bytes.NewReader(body))
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "-- +goose Up":
			up = true
			continue
		case "-- +goose Down":
			down = true
			continue
		case "-- +goose StatementBegin":
			open++
			continue
		case "-- +goose StatementEnd":
			open--
			if open < 0 {
				return fmt.Errorf("line %d: StatementEnd without StatementBegin", line)
			}
			continue
		}
		if strings.HasPrefix(text, "--") {
			continue
		}
		upper := strings.ToUpper(text)
		for _, token := range nonPortable {
			if strings.Contains(upper, token) {
				return fmt.Errorf("line %d: %q is not supported by every dialect", line, token)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	switch {
	case !up:
		return fmt.Errorf("missing \"-- +goose Up\"")
	case !down:
		return fmt.Errorf("missing \"-- +goose Down\"")
	case open != 0:
		return fmt.Errorf("unterminated StatementBegin block")
	}
	return nil
}
