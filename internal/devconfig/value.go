package devconfig

import (
	"strconv"
	"strings"
)

// lookup finds "name=" in a tuple such as "(Id=1,Name=Foo,Description=Bar)"
// and returns the token following it. The name must start a field, so
// "Name=" does not match inside "PlayerName=". A double-quoted value may
// contain separators; an unquoted one ends at ',', ')' or whitespace.
func lookup(s, name string) (string, bool) {
	return lookupUntil(s, name, ",) \t")
}

// lookupSwitch reads a command-line style "-name=value" token, which ends
// only at whitespace.
func lookupSwitch(s, name string) (string, bool) {
	return lookupUntil(s, name, " \t")
}

func lookupUntil(s, name, stops string) (string, bool) {
	lower := strings.ToLower(s)
	match := strings.ToLower(name) + "="
	from := 0
	for {
		i := strings.Index(lower[from:], match)
		if i < 0 {
			return "", false
		}
		i += from
		if i == 0 || isFieldStart(s[i-1]) {
			return token(s[i+len(match):], stops), true
		}
		from = i + 1
	}
}

func isFieldStart(c byte) bool {
	switch c {
	case '(', ',', ' ', '\t', '-':
		return true
	}
	return false
}

func token(rest, stops string) string {
	if strings.HasPrefix(rest, `"`) {
		if end := strings.IndexByte(rest[1:], '"'); end >= 0 {
			return rest[1 : end+1]
		}
		return rest[1:]
	}
	if end := strings.IndexAny(rest, stops); end >= 0 {
		return rest[:end]
	}
	return rest
}

func lookupInt(s, name string) (int, bool) {
	v, ok := lookup(s, name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func lookupFloat(s, name string) (float64, bool) {
	v, ok := lookup(s, name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseBool accepts true/yes/on and any non-zero number.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on":
		return true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && f != 0
}
