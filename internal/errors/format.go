// Package errors provides error formatting for rolesmanifest CLI output.
package errors

import (
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

// PrintOptions controls error output formatting.
type PrintOptions struct {
	// Verbose prints every detail key (under extra:) and the underlying cause.
	Verbose bool
}

// Context keys printed in default mode, in order.
var defaultContextKeys = []string{
	"op",
	"root",
	"dir",
	"output",
	"config",
	"file",
}

const maxValueLen = 256

// Format formats an error for display without I/O.
func Format(err error, opts PrintOptions) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	e, ok := As(err)
	if !ok {
		sb.WriteString(err.Error())
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString("error_code: ")
	sb.WriteString(string(e.Code))
	sb.WriteString("\n")
	sb.WriteString(e.Msg)
	sb.WriteString("\n")

	printed := make(map[string]bool)
	wroteContext := false
	for _, key := range defaultContextKeys {
		val, ok := e.Details[key]
		if !ok || val == "" {
			continue
		}
		if !wroteContext {
			sb.WriteString("\n")
			wroteContext = true
		}
		printed[key] = true
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(sanitizeValue(val, maxValueLen))
		sb.WriteString("\n")
	}

	if opts.Verbose {
		var extraKeys []string
		for key, val := range e.Details {
			if !printed[key] && key != "hint" && val != "" {
				extraKeys = append(extraKeys, key)
			}
		}
		if len(extraKeys) > 0 {
			sort.Strings(extraKeys)
			sb.WriteString("\nextra:\n")
			for _, key := range extraKeys {
				sb.WriteString("  ")
				sb.WriteString(key)
				sb.WriteString(": ")
				sb.WriteString(sanitizeValue(e.Details[key], maxValueLen))
				sb.WriteString("\n")
			}
		}
		if e.Cause != nil {
			sb.WriteString("\ncause: ")
			sb.WriteString(sanitizeValue(e.Cause.Error(), maxValueLen))
			sb.WriteString("\n")
		}
	}

	if hint := e.Details["hint"]; hint != "" {
		sb.WriteString("\nhint: ")
		sb.WriteString(hint)
		sb.WriteString("\n")
	}

	return sb.String()
}

// PrintWithOptions writes a formatted error to w with the given options.
func PrintWithOptions(w io.Writer, err error, opts PrintOptions) {
	if err == nil {
		return
	}
	_, _ = io.WriteString(w, Format(err, opts))
}

// sanitizeValue flattens a value onto one line and truncates it to at most maxLen bytes
// without splitting a UTF-8 sequence.
func sanitizeValue(val string, maxLen int) string {
	val = strings.TrimRight(val, " \t\r\n")
	val = strings.ReplaceAll(val, "\r\n", "\n")
	val = strings.ReplaceAll(val, "\n", "\\n")
	if len(val) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		return val[:cut] + "…"
	}
	return val
}
