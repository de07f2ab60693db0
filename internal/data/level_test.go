package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLevel(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadLevel(t *testing.T) {
	dir := t.TempDir()
	p := writeLevel(t, dir, "tiny.yaml", `
width: 4
rows:
  - "WWWW"
  - "WP W P=neo"
  - "WWWW"
`)
	l, err := LoadLevel(p)
	require.NoError(t, err)
	assert.Equal(t, "tiny", l.Name)
	assert.Equal(t, 4, l.Width)
	assert.Equal(t, 3, l.Height())
	assert.Equal(t, "WP W P=neo", l.Rows[1])
}

func TestLoadLevel_Invalid(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"nowidth.yaml": "rows: [\"W\"]\n",
		"norows.yaml":  "width: 3\n",
		"broken.yaml":  "width: [\n",
	} {
		_, err := LoadLevel(writeLevel(t, dir, name, body))
		assert.Error(t, err, name)
	}
	_, err := LoadLevel(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLevelTable_Bundled(t *testing.T) {
	tbl, err := LoadLevelTable(filepath.Join("..", "..", "levels"))
	require.NoError(t, err)
	assert.Equal(t, []string{"arena", "map01"}, tbl.Names())

	m := tbl.Get("map01")
	require.NotNil(t, m)
	assert.Equal(t, 73, m.Width)
	assert.Equal(t, 21, m.Height())
	assert.Nil(t, tbl.Get("nope"))
}

func TestLevelTable_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "a.yaml", "name: same\nwidth: 1\nrows: [\"W\"]\n")
	writeLevel(t, dir, "b.yaml", "name: same\nwidth: 1\nrows: [\"W\"]\n")
	_, err := LoadLevelTable(dir)
	assert.Error(t, err)
}

func TestParseLevelText(t *testing.T) {
	l, err := ParseLevelText("demo", 0, []byte("WWWW\r\nWP W P=neo\r\nWWWW\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "demo", l.Name)
	assert.Equal(t, 4, l.Width)
	assert.Equal(t, []string{"WWWW", "WP W P=neo", "WWWW"}, l.Rows)

	l, err = ParseLevelText("wide", 6, []byte("WWWW\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, l.Width)

	_, err = ParseLevelText("empty", 0, []byte("\n\n"))
	assert.Error(t, err)
}

func TestWriteLevel_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := &Level{Name: "demo", Width: 4, Rows: []string{"WWWW", "WP W P=neo", "W  W"}}
	p := filepath.Join(dir, "out", "demo.yaml")
	require.NoError(t, WriteLevel(p, in, "converted"))

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "# converted\n")

	out, err := LoadLevel(p)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
