package errcore

import (
	"fmt"
	"strings"
)

// Mold renders an error object for display:
//
//	** <type> Error: <formatted-message>
//	** Where: <where-block>
//	** Near: <near-block>
//	** File: <file>
//	** Line: <line>
//
// Any blank field is omitted. A template argument with no bound value
// renders as "(name)". If rendering the message panics, the whole message
// is replaced by the "bad-error-format" marker.
func Mold(e *Error) string {
	var b strings.Builder

	typ := e.Type
	if typ == "" {
		b.WriteString("** Error: ")
	} else {
		fmt.Fprintf(&b, "** %s Error: ", titleCase(typ))
	}
	b.WriteString(safeRender(e))
	b.WriteByte('\n')

	if len(e.Where) > 0 {
		fmt.Fprintf(&b, "** Where: %s\n", strings.Join(e.Where, " "))
	}
	if e.Near != nil && e.Near.Len() > 0 {
		fmt.Fprintf(&b, "** Near: %s\n", moldArray(e.Near))
	}
	if e.File != "" {
		fmt.Fprintf(&b, "** File: %s\n", e.File)
	}
	if e.Line != nil {
		fmt.Fprintf(&b, "** Line: %d\n", *e.Line)
	}
	return b.String()
}

func safeRender(e *Error) (out string) {
	defer func() {
		if recover() != nil {
			out = "bad-error-format"
		}
	}()
	return e.RenderedMessage()
}

func moldArray(a *Array) string {
	parts := make([]string, 0, a.Len())
	for _, c := range a.Cells {
		parts = append(parts, cellDisplay(c))
	}
	return strings.Join(parts, " ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
