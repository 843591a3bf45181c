package sat

import "testing"

func TestLuby(t *testing.T) {
	// First terms of the Luby sequence: 1, 1, 2, 1, 1, 2, 4, 1, 1, 2, ...
	want := []float64{1, 1, 2, 1, 1, 2, 4, 1, 1, 2}
	for x, w := range want {
		if got := luby(2, x); got != w {
			t.Errorf("luby(2, %d) = %v, want %v", x, got, w)
		}
	}
}
