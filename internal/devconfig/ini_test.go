package devconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RepeatedKeysInOrder(t *testing.T) {
	f, err := Parse(strings.NewReader(`
# comment
; another comment
[Dev]
Type = Button
Button=(Id=0,Name=A,Description=A)
Button=(Id=1,Name=B,Description=B)
Button=(Id=1,Name=B,Description=B)
.Button=(Id=2,Name=C,Description=C)
`))
	require.NoError(t, err)
	require.Len(t, f.Sections, 1)

	s := f.Sections[0]
	assert.Equal(t, "Dev", s.Name)

	typ, ok := s.Get("type")
	require.True(t, ok)
	assert.Equal(t, "Button", typ)

	var values []string
	for _, e := range s.All("Button") {
		values = append(values, e.Value)
	}
	assert.Equal(t, []string{
		"(Id=0,Name=A,Description=A)",
		"(Id=1,Name=B,Description=B)",
		"(Id=1,Name=B,Description=B)",
		"(Id=2,Name=C,Description=C)",
	}, values)
}

func TestParse_EngineConfigRules(t *testing.T) {
	f, err := Parse(strings.NewReader(`Orphan=ignored
[Dev]
Type=Button
not a key value line
Address="dev@localhost"
Note=a;b#c
[Other]
Type=Analog
[Dev]
+Button=(Id=0,Name=A,Description=A)
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Dev", "Other"}, f.SectionNames())

	s := f.Sections[0]
	addr, _ := s.Get("Address")
	assert.Equal(t, "dev@localhost", addr)
	note, _ := s.Get("Note")
	assert.Equal(t, "a;b#c", note)
	assert.Len(t, s.All("Button"), 1)
	_, ok := s.Get("Orphan")
	assert.False(t, ok)
}

func TestParse_UnclosedSection(t *testing.T) {
	_, err := Parse(strings.NewReader("[Dev\nType=Button\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse device config")
}

func TestParse_BOMAndSectionNames(t *testing.T) {
	f, err := Parse(strings.NewReader("\ufeff[A]\nK=V\n[B]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, f.SectionNames())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("[A]\nType=Button\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)

	_, err = Load(filepath.Join(dir, "missing.ini"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.ini")
	require.NoError(t, os.WriteFile(bad, []byte("[oops\n"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}
