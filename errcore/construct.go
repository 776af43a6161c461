package errcore

import "fmt"

// MakeError is the variadic error builder. code == UserCode means the
// first arg is a user-supplied message (string/block/blank); otherwise
// code is looked up in the catalog to determine the template and its
// arity, and exactly that many args are consumed and bound by the
// template's get-word names.
//
// Arity mismatch handling: this implementation always substitutes blank
// for missing arguments rather than asserting, since a caller compiled
// against a stale template should degrade rather than crash a
// long-running process; callers that want strict validation can wrap
// MakeError and inspect the returned error's arguments themselves.
func MakeError(rt *Runtime, code int, args ...Cell) (*Error, error) {
	if rt.Catalog == nil {
		panic(fmt.Sprintf("errcore: make_error(%d, ...) called before catalog initialized", code))
	}
	// Code 0 is reserved: it is never a valid direct argument to the
	// generic builder, even though category 0 ("special") is a real
	// catalog category — Halt() reaches it through buildCataloged instead.
	if code == 0 {
		panic("errcore: make_error: code 0 is reserved")
	}

	e := NewError()

	if code == UserCode {
		var msg Cell
		if len(args) > 0 {
			msg = args[0]
		} else {
			msg = BlankCell()
		}
		switch msg.Kind {
		case KindString:
			e.Message = Template{Parts: []TemplatePart{{Lit: fmt.Sprintf("%v", msg.Payload)}}}
		case KindBlock:
			e.Message = Template{Parts: []TemplatePart{{Lit: cellDisplay(msg)}}}
		case KindBlank, KindNone:
			e.Message = Template{}
		default:
			return nil, fmt.Errorf("errcore: make_error: user message must be string/block/blank, got %s", msg.Kind)
		}
		if rt.TopFrame() != nil {
			SetLocation(rt, e)
		}
		return e, nil
	}

	return buildCataloged(rt, code, args)
}

// buildCataloged is the catalog-lookup half of MakeError, factored out so
// Halt can build the reserved code-0 halt error without going through
// MakeError's "code 0 is reserved" guard (that guard exists to keep
// ordinary callers from fabricating code 0 by hand, not to make halt
// unconstructible).
func buildCataloged(rt *Runtime, code int, args []Cell) (*Error, error) {
	category, id, tmpl, ok := rt.Catalog.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("errcore: make_error: code %d not found in catalog", code)
	}
	e := NewError()
	e.SetCode(code)
	e.Type = category
	e.ID = id
	e.Message = tmpl

	names := tmpl.ArgNames()
	for i, name := range names {
		var v Cell
		if i < len(args) {
			v = args[i]
		} else {
			v = BlankCell() // too few args: substitute blank (release behavior)
		}
		if v.End() {
			v = BlankCell() // end-marker in the variadic list: too few arguments
		}
		// Relative (function-bound) values have no specifier here and are
		// forbidden; this core has no relative-value kind, so no check is
		// made here.
		e.SetArg(name, v)
	}

	if rt.TopFrame() != nil {
		SetLocation(rt, e)
	}

	// Hand the error's tracked allocation over to the GC-managed pool: a
	// typical caller does Fail(MakeError(...)) immediately, which would
	// otherwise leak from the manual-allocation list after the next
	// snapshot.
	idx := rt.Manual.Track()
	rt.Manual.Release(idx)

	return e, nil
}

// ErrorFromString builds a plain user-category error from a string (the
// string case of the user-mode constructor): code/type/id blank, message
// is a copy of the string.
func ErrorFromString(s string) *Error {
	e := NewError()
	e.Message = Template{Parts: []TemplatePart{{Lit: s}}}
	return e
}

// ErrorFields stands in for the block case of the user-mode constructor.
// Evaluating a block with bindings to the root error's fields is an
// evaluator-level concern that lives outside this package; this core
// accepts an already-evaluated field set instead.
type ErrorFields struct {
	Code    *int
	Type    string
	ID      string
	Message string
	Args    map[string]Cell
}

// ErrorFromFields builds an error from structured fields the way
// evaluating an object/block body would yield them. It validates the
// resulting (code, type, id, message) combination exactly as the
// error/object case of the user-mode constructor does.
func ErrorFromFields(rt *Runtime, f ErrorFields) (*Error, error) {
	if f.Code != nil && *f.Code == UserCode {
		return nil, fmt.Errorf("errcore: invalid-error: code == UserCode is reserved")
	}
	e := NewError()
	if f.Code != nil {
		if *f.Code < UserCode {
			category, id, tmpl, ok := rt.Catalog.Lookup(*f.Code)
			if !ok {
				return nil, fmt.Errorf("errcore: invalid-error: code %d not in catalog", *f.Code)
			}
			if f.Type != "" && f.Type != category {
				return nil, fmt.Errorf("errcore: invalid-error: code %d does not match type %q", *f.Code, f.Type)
			}
			if f.ID != "" && f.ID != id {
				return nil, fmt.Errorf("errcore: invalid-error: code %d does not match id %q", *f.Code, f.ID)
			}
			e.SetCode(*f.Code)
			e.Type = category
			e.ID = id
			e.Message = tmpl
		} else {
			e.SetCode(*f.Code)
		}
	} else if f.Type != "" && f.ID != "" {
		code, ok := rt.Catalog.CodeFor(f.Type, f.ID)
		if !ok {
			return nil, fmt.Errorf("errcore: invalid-error: type %q id %q not in catalog", f.Type, f.ID)
		}
		e.SetCode(code)
		e.Type = f.Type
		e.ID = f.ID
		_, _, tmpl, _ := rt.Catalog.Lookup(code)
		e.Message = tmpl
	}
	if f.Message != "" {
		e.Message = Template{Parts: []TemplatePart{{Lit: f.Message}}}
	}
	for k, v := range f.Args {
		e.SetArg(k, v)
	}
	if rt.TopFrame() != nil {
		SetLocation(rt, e)
	}
	return e, nil
}

// ErrorFrom implements the user-mode constructor over the four accepted
// input shapes. Block-shaped input is represented by the caller supplying
// pre-evaluated ErrorFields (see ErrorFields's doc comment); this function
// dispatches string, *Error and ErrorFields inputs.
func ErrorFrom(rt *Runtime, v any) (*Error, error) {
	switch x := v.(type) {
	case string:
		return ErrorFromString(x), nil
	case *Error:
		f := ErrorFields{Type: x.Type, ID: x.ID, Args: x.args}
		if x.HasCode() {
			c := *x.Code
			f.Code = &c
		}
		if len(x.Message.Parts) > 0 {
			f.Message = x.RenderedMessage()
		}
		return ErrorFromFields(rt, f)
	case ErrorFields:
		return ErrorFromFields(rt, x)
	default:
		return nil, fmt.Errorf("errcore: invalid-error: unsupported constructor input %T", v)
	}
}
