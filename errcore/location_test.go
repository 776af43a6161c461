package errcore

import "testing"

func TestBuildNearCentersMarkerAndTruncates(t *testing.T) {
	src := NewArray(0)
	for i := 0; i < 10; i++ {
		src.Push(IntegerCell(i))
	}
	f := &Frame{Source: src, Index: 5}

	near := buildNear(f)
	words := make([]string, 0, near.Len())
	for _, c := range near.Cells {
		words = append(words, cellDisplay(c))
	}

	if words[0] != "..." {
		t.Errorf("expected leading ellipsis when truncating the head, got %v", words)
	}
	if words[len(words)-1] != "..." {
		t.Errorf("expected trailing ellipsis when truncating the tail, got %v", words)
	}

	foundMarker := false
	for _, c := range near.Cells {
		if c.Kind == KindWord && c.Payload == NearMarker {
			foundMarker = true
		}
	}
	if !foundMarker {
		t.Errorf("expected near marker %q in %v", NearMarker, words)
	}
}

func TestBuildNearNoEllipsisWhenShort(t *testing.T) {
	src := NewArray(0)
	src.Push(IntegerCell(1))
	src.Push(IntegerCell(2))
	f := &Frame{Source: src, Index: 0}

	near := buildNear(f)
	for _, c := range near.Cells {
		if c.Kind == KindWord && c.Payload == "..." {
			t.Errorf("expected no ellipsis when fewer than 3 cells surround the index, got %v", near.Cells)
		}
	}
}

func TestBuildWhereSkipsMidFulfillment(t *testing.T) {
	rt := NewDefaultRuntime()
	rt.PushFrame(&Frame{Label: "outer", IsCall: true})
	rt.PushFrame(&Frame{Label: "fulfilling", IsCall: true, MidFulfillment: true})
	rt.PushFrame(&Frame{Label: "not-a-call", IsCall: false})

	where := buildWhere(rt)
	if len(where) != 1 || where[0] != "outer" {
		t.Errorf("expected where=[outer], got %v", where)
	}
}
