package db

import (
	"strings"
	"testing"
)

func TestMigrationVersionsAreUniqueAndOrdered(t *testing.T) {
	seen := map[int]string{}
	last := 0
	for _, m := range postgresMigrations {
		if prev, ok := seen[m.Version]; ok {
			t.Errorf("version %d used by both %q and %q", m.Version, prev, m.Name)
		}
		seen[m.Version] = m.Name
		if m.Version != last+1 {
			t.Errorf("migration %q has version %d, want %d", m.Name, m.Version, last+1)
		}
		last = m.Version
	}
}

func TestMigrationsHaveUpAndDown(t *testing.T) {
	for _, m := range postgresMigrations {
		if strings.TrimSpace(m.Up) == "" {
			t.Errorf("migration %q has empty Up", m.Name)
		}
		if strings.TrimSpace(m.Down) == "" {
			t.Errorf("migration %q has empty Down", m.Name)
		}
		if m.Name == "" {
			t.Errorf("migration %d has no name", m.Version)
		}
	}
}
