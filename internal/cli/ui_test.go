package cli

import "testing"

func TestStatsLine(t *testing.T) {
	tests := []struct {
		nodes, leaves int
		cached        bool
		want          string
	}{
		{5, 3, true, "  5 nodes · 3 leaves · cached"},
		{5, 3, false, "  5 nodes · 3 leaves · fresh"},
		{0, 0, false, "  fresh"},
		{1, 0, true, "  1 nodes · cached"},
	}
	for _, tt := range tests {
		if got := statsLine(tt.nodes, tt.leaves, tt.cached); got != tt.want {
			t.Errorf("statsLine(%d, %d, %v) = %q, want %q", tt.nodes, tt.leaves, tt.cached, got, tt.want)
		}
	}
}
