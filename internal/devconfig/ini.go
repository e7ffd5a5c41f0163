package devconfig

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// loadOptions read VRPNConfig.ini the way the engine's config system does:
// repeated keys are all kept, lines that are not key=value are skipped and
// values keep '#' and ';' characters.
var loadOptions = ini.LoadOptions{
	AllowShadows:               true,
	AllowDuplicateShadowValues: true,
	SkipUnrecognizableLines:    true,
	IgnoreInlineComment:        true,
	IgnoreContinuation:         true,
	KeyValueDelimiters:         "=",
}

// Entry is a single key/value pair. Keys may repeat within a section.
type Entry struct {
	Key   string
	Value string
}

// Section is a bracketed block of entries. Entries of one key are in file
// order.
type Section struct {
	Name    string
	Entries []Entry
}

// Get returns the first value for key. Keys compare case-insensitively.
func (s *Section) Get(key string) (string, bool) {
	for _, e := range s.Entries {
		if strings.EqualFold(e.Key, key) {
			return e.Value, true
		}
	}
	return "", false
}

// All returns every entry for key in file order.
func (s *Section) All(key string) []Entry {
	var out []Entry
	for _, e := range s.Entries {
		if strings.EqualFold(e.Key, key) {
			out = append(out, e)
		}
	}
	return out
}

// File is a parsed device configuration.
type File struct {
	Path     string
	Sections []*Section
}

// SectionNames returns the section names in file order.
func (f *File) SectionNames() []string {
	names := make([]string, 0, len(f.Sections))
	for _, s := range f.Sections {
		names = append(names, s.Name)
	}
	return names
}

func (f *File) section(name string) *Section {
	for _, s := range f.Sections {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	s := &Section{Name: name}
	f.Sections = append(f.Sections, s)
	return s
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open device config: %w", err)
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse reads an ini stream. Sections with the same name are merged,
// surrounding quotes are removed from values and a leading '+' or '.' on a
// key is dropped. Keys outside of any section are ignored.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read device config: %w", err)
	}
	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse device config: %w", err)
	}

	f := &File{}
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		s := f.section(sec.Name())
		for _, key := range sec.Keys() {
			name := strings.TrimLeft(key.Name(), "+.")
			if name == "" {
				continue
			}
			for _, v := range key.ValueWithShadows() {
				s.Entries = append(s.Entries, Entry{Key: name, Value: v})
			}
		}
	}
	return f, nil
}
