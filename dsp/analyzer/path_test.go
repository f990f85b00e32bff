package analyzer

import "testing"

func TestPathBuildAndReset(t *testing.T) {
	var p Path
	if !p.Empty() || p.Len() != 0 {
		t.Fatalf("zero Path: Empty=%v Len=%d", p.Empty(), p.Len())
	}
	p.MoveTo(0, 10)
	p.LineTo(5, 20)
	p.LineTo(10, 5)
	if p.Empty() || p.Len() != 3 {
		t.Fatalf("Empty=%v Len=%d, want false 3", p.Empty(), p.Len())
	}

	snapshot := func() Path { return p }
	if snapshot().Len() != 3 || snapshot().Empty() {
		t.Fatalf("copied path: Len=%d Empty=%v", snapshot().Len(), snapshot().Empty())
	}

	p.Reset()
	if !p.Empty() {
		t.Fatalf("Len after Reset = %d, want 0", p.Len())
	}
}
