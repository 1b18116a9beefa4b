// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package access

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationPath = "../../data/migrations/000001_init.up.sql"

// grantColumns is every blog.access column the grant queries in this package
// select, insert, or order by. Keep in sync with store_postgres.go.
var grantColumns = []string{"userid", "blogid", "role", "createdat", "updatedat"}

func accessTableDDL(t *testing.T) string {
	t.Helper()

	schema, err := os.ReadFile(migrationPath)
	require.NoError(t, err)

	block := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS blog\.access \((.*?)\);`).
		FindStringSubmatch(string(schema))
	require.Len(t, block, 2, "blog.access definition missing from initial migration")

	return block[1]
}

// The grant queries reference columns beyond the composite key, so the
// migration has to declare every one of them or each grant operation fails
// at the database with an undefined-column error.
func TestGrantColumnsDeclaredInSchema(t *testing.T) {
	ddl := accessTableDDL(t)

	for _, column := range grantColumns {
		declared := regexp.MustCompile(`(?m)^\s*` + column + `\s+\w`).MatchString(ddl)
		assert.True(t, declared, "blog.access does not declare column %q", column)
	}
}

func TestGrantTimestampColumnsHaveDefaults(t *testing.T) {
	ddl := accessTableDDL(t)

	for _, line := range strings.Split(ddl, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "createdat") || strings.HasPrefix(trimmed, "updatedat") {
			assert.Contains(t, trimmed, "DEFAULT NOW()", "timestamp column must default at the database: %s", trimmed)
		}
	}
}

// Role values read back from the database must pass through ParseRole so an
// unexpected string surfaces as an error instead of leaking into a Grant.
func TestGrantHydrationParsesRoles(t *testing.T) {
	source, err := os.ReadFile("store_postgres.go")
	require.NoError(t, err)

	assert.NotContains(t, string(source), "Role(rawRole)",
		"grant hydration must use ParseRole, not a raw conversion")
	assert.GreaterOrEqual(t, strings.Count(string(source), "ParseRole(rawRole)"), 3,
		"FindGrant, UpsertGrant and ListGrants each parse the scanned role")
}
