package errcore

import "testing"

func TestMakeErrorUserCode(t *testing.T) {
	rt := NewDefaultRuntime()
	e, err := MakeError(rt, UserCode, StringCell("oops"))
	if err != nil {
		t.Fatalf("MakeError: %v", err)
	}
	if e.HasCode() || e.Type != "" || e.ID != "" {
		t.Fatalf("expected blank code/type/id for a user error, got code=%v type=%q id=%q", e.Code, e.Type, e.ID)
	}
	if e.RenderedMessage() != "oops" {
		t.Errorf("expected message %q, got %q", "oops", e.RenderedMessage())
	}
}

func TestMakeErrorPanicsWithoutCatalog(t *testing.T) {
	rt := &Runtime{}
	defer func() {
		if recover() == nil {
			t.Fatal("expected MakeError to panic when the catalog is not initialized")
		}
	}()
	MakeError(rt, 200)
}

func TestMakeErrorCodeZeroReserved(t *testing.T) {
	rt := NewDefaultRuntime()
	defer func() {
		if recover() == nil {
			t.Fatal("expected MakeError(0, ...) to panic: code 0 is reserved")
		}
	}()
	MakeError(rt, 0)
}

func TestHaltBypassesCodeZeroGuard(t *testing.T) {
	rt := NewDefaultRuntime()
	e := Halt(rt)
	if !IsHalt(e) {
		t.Fatal("expected Halt to build the reserved halt error without panicking")
	}
}

func TestMakeErrorArityMismatchSubstitutesBlank(t *testing.T) {
	rt := NewDefaultRuntime()
	code, _ := rt.Catalog.CodeFor("script", "invalid-type")
	// invalid-type wants 3 args; supply only 1.
	e, err := MakeError(rt, code, IntegerCell(7))
	if err != nil {
		t.Fatalf("MakeError: %v", err)
	}
	expected, _ := e.Arg("expected")
	if expected.Kind != KindBlank {
		t.Errorf("expected missing arg to be substituted with blank, got %v", expected)
	}
}

func TestErrorFromStringRoundTrip(t *testing.T) {
	e, err := ErrorFrom(nil, "plain message")
	if err != nil {
		t.Fatalf("ErrorFrom: %v", err)
	}
	if e.RenderedMessage() != "plain message" {
		t.Errorf("expected message %q, got %q", "plain message", e.RenderedMessage())
	}
}

func TestErrorFromErrorRoundTrip(t *testing.T) {
	rt := NewDefaultRuntime()
	code, _ := rt.Catalog.CodeFor("script", "invalid-arg")
	e1, err := MakeError(rt, code, IntegerCell(9))
	if err != nil {
		t.Fatalf("MakeError: %v", err)
	}

	e2, err := ErrorFrom(rt, e1)
	if err != nil {
		t.Fatalf("ErrorFrom: %v", err)
	}
	if !e1.Equal(e2) {
		t.Errorf("expected round-tripped error to equal the original: %+v vs %+v", e1, e2)
	}
}

func TestErrorFromRejectsUserCodeAsInteger(t *testing.T) {
	rt := NewDefaultRuntime()
	uc := UserCode
	_, err := ErrorFrom(rt, &Error{Code: &uc})
	if err == nil {
		t.Fatal("expected code == UserCode to be rejected by the user-mode constructor")
	}
}

func TestEqualityExcludesAdvisoryFields(t *testing.T) {
	rt := NewDefaultRuntime()
	code, _ := rt.Catalog.CodeFor("script", "invalid-arg")
	e1, _ := MakeError(rt, code, IntegerCell(1))
	e2, _ := MakeError(rt, code, IntegerCell(1))
	e2.Where = []string{"somewhere"}
	e2.File = "other.go"

	if !e1.Equal(e2) {
		t.Error("expected errors differing only in where/file to be equal")
	}
}
