package migrations

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_PairedUpAndDown(t *testing.T) {
	for _, dialect := range []string{"postgres", "sqlite"} {
		ups, err := fs.Glob(FS, dialect+"/*.up.sql")
		require.NoError(t, err)
		downs, err := fs.Glob(FS, dialect+"/*.down.sql")
		require.NoError(t, err)

		assert.NotEmpty(t, ups, dialect)
		assert.Len(t, downs, len(ups), dialect)
	}
}

// score и play_time не ограничены сверху, 32-битный INTEGER Postgres их не вмещает
func TestPostgresSchema_UnboundedColumnsAre64Bit(t *testing.T) {
	body, err := fs.ReadFile(FS, "postgres/000001_create_scores_table.up.sql")
	require.NoError(t, err)

	for _, column := range []string{"score", "play_time"} {
		re := regexp.MustCompile(`(?m)^\s*` + column + `\s+BIGINT\b`)
		assert.Regexp(t, re, string(body), "column %s", column)
	}
}
