package errcore

import "testing"

func TestLookupCodeBijection(t *testing.T) {
	cat := DefaultCatalog
	for code := 0; code < UserCode; code++ {
		category, id, tmpl, ok := cat.Lookup(code)
		if !ok {
			continue
		}
		gotCode, ok := cat.CodeFor(category, id)
		if !ok {
			t.Fatalf("CodeFor(%q, %q) not found after Lookup(%d) succeeded", category, id, code)
		}
		if gotCode != code {
			t.Errorf("bijection broken: Lookup(%d) -> (%s, %s), CodeFor -> %d", code, category, id, gotCode)
		}
		if tmpl.Arity() != len(tmpl.ArgNames()) {
			t.Errorf("arity mismatch for %s/%s", category, id)
		}
	}
}

func TestLookupUnregisteredCategory(t *testing.T) {
	// Category index 9 (code 900) is below MaxBuiltinCategories but
	// unregistered in the default catalog.
	if _, _, _, ok := DefaultCatalog.Lookup(900); ok {
		t.Fatal("expected lookup of an unregistered category to return ok=false")
	}
}

func TestLookupCodeZeroReservedForHalt(t *testing.T) {
	category, id, _, ok := DefaultCatalog.Lookup(0)
	if !ok || category != "special" || id != "halt" {
		t.Fatalf("expected code 0 to resolve to special/halt, got (%s, %s, %v)", category, id, ok)
	}
}

func TestTemplateArity(t *testing.T) {
	cases := []struct {
		tmpl string
		want int
	}{
		{"No params here", 0},
		{"One :arg1 param", 1},
		{":arg1 at the start and :arg2 at the end", 2},
	}
	for _, c := range cases {
		tmpl := ParseTemplate(c.tmpl)
		if tmpl.Arity() != c.want {
			t.Errorf("ParseTemplate(%q).Arity() = %d, want %d", c.tmpl, tmpl.Arity(), c.want)
		}
	}
}

func TestRegisterExtensionCategory(t *testing.T) {
	cat := NewCatalog()
	base, err := cat.Register(CategoryTemplate{
		Name: "ext",
		Type: "Extension",
		IDs: []IDTemplate{
			{ID: "widget-broke", Template: "Widget :arg1 broke"},
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if base != 0 {
		t.Fatalf("expected first registration to take slot 0, got base %d", base)
	}

	category, id, tmpl, ok := cat.Lookup(base)
	if !ok || category != "ext" || id != "widget-broke" {
		t.Fatalf("Lookup(%d) = (%s, %s, ok=%v), want (ext, widget-broke, true)", base, category, id, ok)
	}
	if tmpl.Arity() != 1 {
		t.Errorf("expected arity 1, got %d", tmpl.Arity())
	}
}

func TestRegisterOutOfCategorySlots(t *testing.T) {
	cat := NewCatalog()
	for i := 0; i < MaxBuiltinCategories; i++ {
		if _, err := cat.Register(CategoryTemplate{Name: string(rune('a' + i))}); err != nil {
			t.Fatalf("Register #%d: %v", i, err)
		}
	}
	if _, err := cat.Register(CategoryTemplate{Name: "overflow"}); err == nil {
		t.Fatal("expected registering past MaxBuiltinCategories to fail")
	}
}

func TestCategoryBaseMismatchRejected(t *testing.T) {
	data := []byte(`
[[categories]]
name = "broken"
code = 50
type = "Broken"
`)
	if _, err := LoadCatalog(data); err == nil {
		t.Fatal("expected a category whose code does not match its position to be rejected")
	}
}
