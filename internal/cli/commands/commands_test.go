package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryscope/sqlfront/internal/cli"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestHelpListsCommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"parse", "tokenize", "analyze", "validate"} {
		assert.Contains(t, out, expected)
	}
}

func TestParseCommand(t *testing.T) {
	out, err := execute(t, "parse", "SELECT id, name FROM users")
	require.NoError(t, err)
	assert.Contains(t, out, "tables:  users")
	assert.Contains(t, out, "columns: id, name")
}

func TestParseCommandInvalidSQL(t *testing.T) {
	_, err := execute(t, "parse", "SELECT FROM t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNEXPECTED_TOKEN")
}

func TestParseCommandStrict(t *testing.T) {
	sql := "SELECT * FROM users ;"

	_, err := execute(t, "parse", sql)
	assert.NoError(t, err)

	_, err = execute(t, "parse", sql, "--strict")
	assert.Error(t, err)
}

func TestParseCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT id FROM events"), 0o644))

	out, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "events")
}

func TestTokenizeCommand(t *testing.T) {
	out, err := execute(t, "tokenize", "SELECT 1")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT")
	assert.Contains(t, out, "NUMBER")
	assert.Contains(t, out, "EOF")
}

func TestTokenizeCommandJSON(t *testing.T) {
	out, err := execute(t, "tokenize", "SELECT 1", "-o", "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["))
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := execute(t, "analyze", "SELECT city, COUNT(id) FROM users GROUP BY city ORDER BY city")
	require.NoError(t, err)
	assert.Contains(t, out, "statement:  SELECT")
	assert.Contains(t, out, "complexity: medium")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "SELECT * FROM users")
	require.NoError(t, err)
	assert.Contains(t, out, "OK")

	_, err = execute(t, "validate", "SELECT * FROM")
	assert.Error(t, err)
}
