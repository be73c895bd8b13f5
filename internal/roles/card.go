// Package roles turns a directory of role cards into manifest entries.
//
// The functions here never print; per-card failures are returned as values
// (see Outcome) so callers decide how to report them.
package roles

import (
	"bytes"
	"encoding/json"
	"io"
	"unicode/utf8"

	"github.com/NielsdaWheelz/rolesmanifest/internal/errors"
)

// Entry is one manifest line. Field order is the manifest's key order.
// Optional fields hold the card's compacted JSON text, nil when absent or null.
type Entry struct {
	Key           string          `json:"key"`
	Title         string          `json:"title"`
	ShortTitle    json.RawMessage `json:"short_title"`
	AutonomyLevel json.RawMessage `json:"autonomy_level"`
	Path          string          `json:"path"`
	EffectiveDate json.RawMessage `json:"effective_date"`
}

// Outcome is the result of loading one candidate file: exactly one of Entry or Err is set.
// Err is an *errors.Error coded E_CARD_PARSE or E_CARD_INVALID.
type Outcome struct {
	File  string
	Entry *Entry
	Err   error
}

// OK reports whether the card produced an entry.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Entry != nil
}

// Reason returns the short skip reason shown to the operator, or "" for a good card.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	if e, ok := errors.As(o.Err); ok {
		return e.Msg
	}
	return o.Err.Error()
}

// LoadCard parses one card file's content into an Outcome.
// pathPrefix + name becomes the entry's path.
func LoadCard(name string, data []byte, pathPrefix string) Outcome {
	doc, err := decodeCard(data)
	if err != nil {
		return parseFailure(name, err)
	}

	var obj map[string]json.RawMessage
	if doc[0] != '{' || json.Unmarshal(doc, &obj) != nil {
		return Outcome{File: name, Err: errors.NewWithDetails(errors.ECardInvalid,
			"card is not a JSON object", map[string]string{"file": name})}
	}

	key, keyOK := stringField(obj, "key")
	title, titleOK := stringField(obj, "title")
	if !keyOK || key == "" || !titleOK || title == "" {
		return Outcome{File: name, Err: errors.NewWithDetails(errors.ECardInvalid,
			"missing key/title", map[string]string{"file": name})}
	}

	return Outcome{File: name, Entry: &Entry{
		Key:           key,
		Title:         title,
		ShortTitle:    optional(obj["short_title"]),
		AutonomyLevel: optional(obj["autonomy_level"]),
		Path:          pathPrefix + name,
		EffectiveDate: optional(obj["effective_date"]),
	}}
}

// stringField returns obj[name] when it is a JSON string.
func stringField(obj map[string]json.RawMessage, name string) (string, bool) {
	raw := obj[name]
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// optional compacts a raw field value, keeping its key order and number text.
// Absent and null values become nil.
func optional(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil
	}
	if bytes.Equal(buf.Bytes(), []byte("null")) {
		return nil
	}
	return buf.Bytes()
}

// ReadFailure builds the Outcome for a candidate whose content could not be read.
func ReadFailure(name string, err error) Outcome {
	return parseFailure(name, err)
}

func parseFailure(name string, err error) Outcome {
	return Outcome{File: name, Err: errors.WrapWithDetails(errors.ECardParse,
		"JSON load error: "+err.Error(), err, map[string]string{"file": name})}
}

// decodeCard checks that data holds exactly one JSON value and returns it
// without leading whitespace.
func decodeCard(data []byte) (json.RawMessage, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	var doc json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errEmptyDocument
		}
		return nil, err
	}
	if rest := bytes.TrimLeft(data[dec.InputOffset():], " \t\r\n"); len(rest) > 0 {
		return nil, errTrailingData
	}
	return doc, nil
}

type cardError string

func (e cardError) Error() string { return string(e) }

const (
	errInvalidUTF8   cardError = "invalid UTF-8"
	errEmptyDocument cardError = "unexpected end of JSON input"
	errTrailingData  cardError = "extra data after top-level value"
)
