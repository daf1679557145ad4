package document

import (
	"testing"

	"github.com/neil-edlib/edlib/pkg/mark"
)

func TestStepAndCharAt(t *testing.T) {
	d := NewMemdoc("t", "abc")
	m := d.NewMarkAt(0, mark.ViewUngrouped)

	if r := d.CharAt(m, true); r != 'a' {
		t.Fatalf("CharAt(fwd) = %q, want 'a'", r)
	}
	if r := d.Step(m, true, true); r != 'a' {
		t.Fatalf("Step(fwd) = %q, want 'a'", r)
	}
	if r := d.CharAt(m, false); r != 'a' {
		t.Fatalf("CharAt(back) after stepping past 'a' = %q, want 'a'", r)
	}
	if r := d.Step(m, true, true); r != 'b' {
		t.Fatalf("Step(fwd) = %q, want 'b'", r)
	}
	if r := d.Step(m, true, true); r != 'c' {
		t.Fatalf("Step(fwd) = %q, want 'c'", r)
	}
	if r := d.Step(m, true, true); r != EOD {
		t.Fatalf("Step(fwd) at end = %v, want EOD", r)
	}
}

func TestSetRef(t *testing.T) {
	d := NewMemdoc("t", "hello")
	m := d.NewMarkAt(2, mark.ViewUngrouped)
	d.SetRef(m, false)
	if r := d.CharAt(m, true); r != 'h' {
		t.Fatalf("after SetRef(start), CharAt = %q, want 'h'", r)
	}
	d.SetRef(m, true)
	if r := d.CharAt(m, false); r != 'o' {
		t.Fatalf("after SetRef(end), CharAt(back) = %q, want 'o'", r)
	}
}

func TestReplaceShiftsTrailingMarksAndCollapsesInternal(t *testing.T) {
	d := NewMemdoc("t", "hello world")
	start := d.NewMarkAt(6, mark.ViewUngrouped)  // at 'w'
	end := d.NewMarkAt(11, mark.ViewUngrouped)   // end of buffer
	inside := d.NewMarkAt(8, mark.ViewUngrouped) // inside "world"
	before := d.NewMarkAt(0, mark.ViewUngrouped) // untouched

	if err := d.Replace(start, end, "there"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if d.Text() != "hello there" {
		t.Fatalf("Text() = %q, want %q", d.Text(), "hello there")
	}
	if off := d.off(before); off != 0 {
		t.Fatalf("mark before the edit moved: off=%d", off)
	}
	if off := d.off(inside); off != 6 {
		t.Fatalf("mark inside the deleted range should collapse to the insertion point, got %d", off)
	}
	if off := d.off(start); off != 6 {
		t.Fatalf("start mark should stay at the insertion point, got %d", off)
	}
}

func TestReplaceGrowsBuffer(t *testing.T) {
	d := NewMemdoc("t", "ac")
	m := d.NewMarkAt(1, mark.ViewUngrouped)
	tail := d.NewMarkAt(2, mark.ViewUngrouped)

	if err := d.Replace(m, m, "b"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if d.Text() != "abc" {
		t.Fatalf("Text() = %q, want %q", d.Text(), "abc")
	}
	if off := d.off(tail); off != 3 {
		t.Fatalf("mark after the insertion point should shift forward, got %d, want 3", off)
	}
}

// TestReplaceInsertAtSharedPositionOrdersBySeq reproduces spec.md §8
// scenario S1: marks a, b, c all sit at offset 0; inserting "xyz" at b must
// leave a at 0 (it was already ordered before b) and move c to the end of
// the inserted text (it was already ordered after b), with a<b and b<c
// preserved by seq throughout.
func TestReplaceInsertAtSharedPositionOrdersBySeq(t *testing.T) {
	d := NewMemdoc("t", "")
	a := d.NewMarkAt(0, mark.ViewUngrouped)
	b := d.NewMarkAt(0, mark.ViewUngrouped)
	c := d.NewMarkAt(0, mark.ViewUngrouped)

	if mark.Order(a, b) >= 0 || mark.Order(b, c) >= 0 {
		t.Fatalf("insertion order a,b,c should be strictly increasing by seq")
	}

	if err := d.Replace(b, b, "xyz"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if d.Text() != "xyz" {
		t.Fatalf("Text() = %q, want %q", d.Text(), "xyz")
	}
	if off := d.off(a); off != 0 {
		t.Fatalf("a should stay at 0, got %d", off)
	}
	if off := d.off(c); off != 3 {
		t.Fatalf("c should land at the end of the inserted text, got %d", off)
	}
	if mark.Order(a, b) >= 0 {
		t.Fatalf("a should still strictly precede b by seq")
	}
	if mark.Order(b, c) >= 0 {
		t.Fatalf("b should still strictly precede c by seq")
	}
}

func TestContentStreamsEveryCharacter(t *testing.T) {
	d := NewMemdoc("t", "xyz")
	from := d.NewMarkAt(0, mark.ViewUngrouped)

	var got []rune
	d.Content(from, func(r rune, at *mark.Mark) bool {
		got = append(got, r)
		return true
	})
	if string(got) != "xyz" {
		t.Fatalf("Content produced %q, want %q", string(got), "xyz")
	}
}

func TestContentStopsEarly(t *testing.T) {
	d := NewMemdoc("t", "xyz")
	from := d.NewMarkAt(0, mark.ViewUngrouped)

	var got []rune
	d.Content(from, func(r rune, at *mark.Mark) bool {
		got = append(got, r)
		return len(got) < 2
	})
	if string(got) != "xy" {
		t.Fatalf("Content produced %q, want %q (stopped early)", string(got), "xy")
	}
}

func TestGetAttrFallsBackToDocumentAttrs(t *testing.T) {
	d := NewMemdoc("t", "abc")
	d.Attrs().Set("mode", "text")
	m := d.NewMarkAt(0, mark.ViewUngrouped)

	v, ok := d.GetAttr(m, "mode")
	if !ok || v != "text" {
		t.Fatalf("GetAttr fallback = (%q,%v), want (text,true)", v, ok)
	}

	m.Attrs.Set("mode", "binary")
	v, ok = d.GetAttr(m, "mode")
	if !ok || v != "binary" {
		t.Fatalf("GetAttr should prefer mark override, got (%q,%v)", v, ok)
	}
}
