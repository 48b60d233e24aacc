package threads

import "testing"

func TestLabel(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{2, "C"},
		{25, "Z"},
		{26, "BA"},
		{27, "BB"},
		{51, "BZ"},
		{52, "CA"},
		{675, "ZZ"},
		{676, "BAA"},
	}

	for _, tt := range tests {
		if got := Label(tt.index); got != tt.want {
			t.Errorf("Label(%d): got %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestLabel_Unique(t *testing.T) {
	seen := make(map[string]int)
	for i := 0; i < 26*26*3; i++ {
		l := Label(i)
		if prev, ok := seen[l]; ok {
			t.Fatalf("Label(%d) = %q duplicates Label(%d)", i, l, prev)
		}
		seen[l] = i
	}
}

func TestLabel_NeverStartsWithAAfterFirst(t *testing.T) {
	for i := 1; i < 2000; i++ {
		if l := Label(i); l[0] == 'A' {
			t.Fatalf("Label(%d) = %q starts with A", i, l)
		}
	}
}
