package errcore

import "testing"

func TestContextInvariant(t *testing.T) {
	ctx := NewContext()
	ctx.Append("code", IntegerCell(1))
	ctx.Append("type", WordCell("script"))

	if !ctx.balanced() {
		t.Fatal("expected key-list and variable-list to stay equal length")
	}
	if ctx.Len() != 2 {
		t.Fatalf("expected 2 real slots, got %d", ctx.Len())
	}
	if v, ok := ctx.Get("type"); !ok || v.Payload != "script" {
		t.Errorf("expected type == script, got %v ok=%v", v, ok)
	}
}

func TestContextCloneDoesNotAlias(t *testing.T) {
	ctx := NewContext()
	ctx.Append("a", IntegerCell(1))

	clone := ctx.Clone()
	clone.Append("b", IntegerCell(2))

	if ctx.Len() != 1 {
		t.Errorf("expected original context untouched by clone mutation, got len %d", ctx.Len())
	}
}

func TestErrorAsContextFixedSlots(t *testing.T) {
	rt := NewDefaultRuntime()
	code, _ := rt.Catalog.CodeFor("script", "invalid-arg")
	e, _ := MakeError(rt, code, IntegerCell(3))

	ctx := e.AsContext()
	if ctx.KeyAt(1) != "code" || ctx.GetAt(1).Payload != code {
		t.Errorf("expected slot 1 to be code=%d, got %v=%v", code, ctx.KeyAt(1), ctx.GetAt(1))
	}
	if ctx.KeyAt(2) != "type" || ctx.GetAt(2).Payload != "script" {
		t.Errorf("expected slot 2 to be type=script, got %v=%v", ctx.KeyAt(2), ctx.GetAt(2))
	}
	if ctx.KeyAt(3) != "id" || ctx.GetAt(3).Payload != "invalid-arg" {
		t.Errorf("expected slot 3 to be id=invalid-arg, got %v=%v", ctx.KeyAt(3), ctx.GetAt(3))
	}
	if ctx.KeyAt(9) != "arg1" {
		t.Errorf("expected first named template argument at slot 9, got %q", ctx.KeyAt(9))
	}
}
