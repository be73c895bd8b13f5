package roles

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Encode renders entries as JSONL: one compact object per line, each ending in '\n'.
// Non-ASCII text and HTML characters are written literally, U+2028 and U+2029 included.
// No entries yields an empty document.
func Encode(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for i := range entries {
		if err := enc.Encode(&entries[i]); err != nil {
			return nil, fmt.Errorf("encode entry %q: %w", entries[i].Key, err)
		}
	}
	return unescapeLineSeparators(buf.Bytes()), nil
}

// unescapeLineSeparators turns \u2028 and \u2029 escapes back into the literal
// characters. An escaped backslash followed by "u2028" is left alone.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if r, ok := lineSeparator(b[i+1:]); ok {
			out = utf8.AppendRune(out, r)
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}

// lineSeparator reports whether esc (the bytes after a backslash) is u2028 or u2029.
func lineSeparator(esc []byte) (rune, bool) {
	if len(esc) < 5 || esc[0] != 'u' {
		return 0, false
	}
	switch strings.ToLower(string(esc[1:5])) {
	case "2028":
		return '\u2028', true
	case "2029":
		return '\u2029', true
	}
	return 0, false
}

// DecodeManifest reads a JSONL manifest. Blank lines are ignored.
func DecodeManifest(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(text, &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		e.ShortTitle = optional(e.ShortTitle)
		e.AutonomyLevel = optional(e.AutonomyLevel)
		e.EffectiveDate = optional(e.EffectiveDate)
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
