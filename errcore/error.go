package errcore

import "fmt"

// Error is a structured error object: a context whose fixed slots 1-8 are
// code/type/id/message/near/where/file/line, followed by named template
// arguments. Field presence is "blank" (the zero value) rather than nil
// everywhere, matching the convention of the runtime value model this core
// targets; Go callers use the exported accessors and *Has helpers rather
// than checking for a specific sentinel value directly.
type Error struct {
	Code    *int      // nil = blank
	Type    string    // category word; "" = blank
	ID      string    // id word; "" = blank
	Message Template  // message template (arity 0 for a plain string)
	Near    *Array    // snippet around the failure point
	Where   []string  // call labels, most recent first
	File    string    // interned origin filename; "" = blank
	Line    *int      // nil = blank
	argKeys []string  // named template arguments, in template order
	args    map[string]Cell
}

func NewError() *Error {
	return &Error{args: make(map[string]Cell)}
}

// HasCode reports whether Code is set (not blank).
func (e *Error) HasCode() bool { return e.Code != nil }

func (e *Error) CodeOr(def int) int {
	if e.Code == nil {
		return def
	}
	return *e.Code
}

func (e *Error) SetCode(code int) { e.Code = &code }

func (e *Error) SetLine(line int) { e.Line = &line }

// SetArg binds a named template argument; args are recorded in first-set
// order so Render and molding reproduce template order.
func (e *Error) SetArg(name string, val Cell) {
	if e.args == nil {
		e.args = make(map[string]Cell)
	}
	if _, exists := e.args[name]; !exists {
		e.argKeys = append(e.argKeys, name)
	}
	e.args[name] = val
}

func (e *Error) Arg(name string) (Cell, bool) {
	v, ok := e.args[name]
	return v, ok
}

func (e *Error) ArgNames() []string { return e.argKeys }

// renderArgs stringifies each bound argument for message substitution.
func (e *Error) renderArgs() map[string]string {
	out := make(map[string]string, len(e.args))
	for k, v := range e.args {
		out[k] = cellDisplay(v)
	}
	return out
}

func cellDisplay(c Cell) string {
	switch c.Kind {
	case KindBlank, KindNone:
		return ""
	case KindEnd:
		return "<end>"
	case KindInteger:
		return fmt.Sprintf("%d", c.Payload)
	case KindWord:
		return fmt.Sprintf("%v", c.Payload)
	case KindString:
		return fmt.Sprintf("%v", c.Payload)
	case KindBlock:
		if a, ok := c.Payload.(*Array); ok {
			return fmt.Sprintf("[block of %d]", a.Len())
		}
		return "[block]"
	case KindLogic:
		return fmt.Sprintf("%v", c.Payload)
	default:
		return fmt.Sprintf("%v", c.Payload)
	}
}

// RenderedMessage substitutes bound arguments into Message for display.
func (e *Error) RenderedMessage() string {
	return e.Message.Render(e.renderArgs())
}

// Equal is the structural equality relation for errors: it compares code,
// type, id, and named arguments; where/near/file/line are advisory
// provenance captured at the fail site and are excluded, since two errors
// built identically but raised from different call sites should still
// compare equal.
func (e *Error) Equal(o *Error) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.HasCode() != o.HasCode() || (e.HasCode() && *e.Code != *o.Code) {
		return false
	}
	if e.Type != o.Type || e.ID != o.ID {
		return false
	}
	if len(e.argKeys) != len(o.argKeys) {
		return false
	}
	for _, k := range e.argKeys {
		av, aok := e.args[k]
		bv, bok := o.args[k]
		if aok != bok || av != bv {
			return false
		}
	}
	return true
}

// AsContext materializes the error's Context representation: a context
// whose kind is error, fixed slots 1-8, then named arguments.
func (e *Error) AsContext() *Context {
	ctx := NewContext()
	ctx.Append("code", intOrBlank(e.Code))
	ctx.Append("type", wordOrBlank(e.Type))
	ctx.Append("id", wordOrBlank(e.ID))
	ctx.Append("message", e.messageCell())
	ctx.Append("near", e.nearCell())
	ctx.Append("where", e.whereCell())
	ctx.Append("file", wordOrBlank(e.File))
	ctx.Append("line", intOrBlank(e.Line))
	for _, k := range e.argKeys {
		ctx.Append(k, e.args[k])
	}
	return ctx
}

func intOrBlank(v *int) Cell {
	if v == nil {
		return BlankCell()
	}
	return IntegerCell(*v)
}

func wordOrBlank(s string) Cell {
	if s == "" {
		return BlankCell()
	}
	return WordCell(s)
}

func (e *Error) messageCell() Cell {
	if len(e.Message.Parts) == 0 {
		return BlankCell()
	}
	if e.Message.Arity() == 0 && len(e.Message.Parts) == 1 {
		return StringCell(e.Message.Parts[0].Lit)
	}
	a := NewArray(0)
	for _, p := range e.Message.Parts {
		if p.Param == "" {
			a.Push(StringCell(p.Lit))
		} else {
			a.Push(WordCell(":" + p.Param))
		}
	}
	return BlockCell(a)
}

func (e *Error) nearCell() Cell {
	if e.Near == nil {
		return BlankCell()
	}
	return BlockCell(e.Near)
}

func (e *Error) whereCell() Cell {
	if len(e.Where) == 0 {
		return BlankCell()
	}
	a := NewArray(0)
	for _, w := range e.Where {
		a.Push(WordCell(w))
	}
	return BlockCell(a)
}

// Error implements the standard error interface so *Error interoperates
// with errors.Is/As and ordinary Go error-handling code.
func (e *Error) Error() string {
	t := e.Type
	if t == "" {
		t = "user"
	}
	return fmt.Sprintf("%s error%s: %s", t, idSuffix(e.ID), e.RenderedMessage())
}

func idSuffix(id string) string {
	if id == "" {
		return ""
	}
	return " [" + id + "]"
}
