package position

import "testing"

func TestSpanString(t *testing.T) {
	s := Span{Line: 3, Column: 7, Start: 42, End: 48}

	if got, want := s.String(), "3:7"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
