package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, "question,answer\nwho?,me\nwhat?,that\n")
	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"question", "answer"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "me", tbl.Get(0, 1))
}

func TestLoadPadsRaggedRows(t *testing.T) {
	path := writeCSV(t, "a,b,c\n1,2\n")
	tbl, err := Load(path)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"1", "2", ""}, tbl.Rows[0])
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	tbl := &Table{
		Header: []string{"q", "a"},
		Rows:   [][]string{{"who, exactly?", "line1\nline2"}},
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, tbl.Save(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Header, back.Header)
	assert.Equal(t, tbl.Rows, back.Rows)
}

func TestColumnAndEnsureColumn(t *testing.T) {
	tbl := &Table{Header: []string{"q"}, Rows: [][]string{{"x"}}}
	assert.Equal(t, 0, tbl.Column("q"))
	assert.Equal(t, -1, tbl.Column("missing"))

	idx := tbl.EnsureColumn("label")
	assert.Equal(t, 1, idx)
	assert.Equal(t, "", tbl.Get(0, 1))

	// Idempotent.
	assert.Equal(t, 1, tbl.EnsureColumn("label"))
	assert.Len(t, tbl.Header, 2)
}

func TestGetSetBounds(t *testing.T) {
	tbl := &Table{Header: []string{"q"}, Rows: [][]string{{"x"}}}
	assert.Equal(t, "", tbl.Get(5, 0))
	assert.Equal(t, "", tbl.Get(0, 5))
	tbl.Set(5, 0, "ignored")
	tbl.Set(0, 0, "y")
	assert.Equal(t, "y", tbl.Get(0, 0))
}

func TestParseCorrectAnswers(t *testing.T) {
	assert.Nil(t, ParseCorrectAnswers("  "))
	assert.Equal(t, []string{"a", "b"}, ParseCorrectAnswers(`["a", "b"]`))
	assert.Equal(t, []string{"117 years old", "117"}, ParseCorrectAnswers("117 years old | 117"))
	assert.Equal(t, []string{"Paris"}, ParseCorrectAnswers("Paris"))
	assert.Equal(t, []string{"42"}, ParseCorrectAnswers(`[42]`))
}
