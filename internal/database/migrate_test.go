package database

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"testing"
)

// expectedEnums must match the type constants in plugins/events and
// plugins/citations. The front-end filters on these values.
var expectedEnums = map[string][]string{
	"events":    {"us", "world", "legislation", "caselaw"},
	"citations": {"image", "caselaw", "webpage", "article", "book"},
}

// migrationsDir returns the absolute path to db/migrations/ from the project root.
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	// thisFile is internal/database/migrate_test.go, project root is two dirs up.
	dir := filepath.Join(filepath.Dir(thisFile), "..", "..", "db", "migrations")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("migrations directory not found at %s: %v", dir, err)
	}
	return dir
}

// createTablePattern captures the table name and body of a CREATE TABLE statement.
var createTablePattern = regexp.MustCompile(`(?s)CREATE TABLE (\w+) \((.*?)\) ENGINE`)

// typeEnumPattern captures the ENUM member list of a `type` column.
var typeEnumPattern = regexp.MustCompile(`\btype\s+ENUM\(([^)]*)\)`)

// TestMigrations_TypeEnums checks the ENUM members declared for events.type
// and citations.type. An out-of-sync value surfaces at runtime as
// "Data truncated for column 'type'" (Error 1265).
func TestMigrations_TypeEnums(t *testing.T) {
	dir := migrationsDir(t)
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}

	found := make(map[string][]string)
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}
		for _, m := range createTablePattern.FindAllStringSubmatch(string(data), -1) {
			table, body := m[1], m[2]
			enum := typeEnumPattern.FindStringSubmatch(body)
			if enum == nil {
				continue
			}
			var values []string
			for _, v := range strings.Split(enum[1], ",") {
				values = append(values, strings.Trim(strings.TrimSpace(v), "'"))
			}
			found[table] = values
		}
	}

	for table, want := range expectedEnums {
		got, ok := found[table]
		if !ok {
			t.Errorf("no type ENUM found for table %s", table)
			continue
		}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("%s.type ENUM = %v, want %v", table, got, want)
		}
	}
}

// TestMigrations_UpDownPairs ensures every .up.sql has a matching .down.sql.
func TestMigrations_UpDownPairs(t *testing.T) {
	dir := migrationsDir(t)
	upFiles, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing up files: %v", err)
	}

	for _, up := range upFiles {
		down := strings.Replace(up, ".up.sql", ".down.sql", 1)
		if _, err := os.Stat(down); err != nil {
			t.Errorf("missing down migration for %s", filepath.Base(up))
		}
	}
}

// TestMigrations_SequentialVersions guards against gaps or duplicate
// version prefixes, which golang-migrate refuses to load.
func TestMigrations_SequentialVersions(t *testing.T) {
	dir := migrationsDir(t)
	upFiles, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing up files: %v", err)
	}
	sort.Strings(upFiles)

	for i, up := range upFiles {
		want := fmt.Sprintf("%06d_", i+1)
		if !strings.HasPrefix(filepath.Base(up), want) {
			t.Errorf("expected %s to start with %s", filepath.Base(up), want)
		}
	}
}
