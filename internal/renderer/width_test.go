package renderer

import "testing"

func TestGraphemeClusterWidth(t *testing.T) {
	tests := []struct {
		name    string
		cluster string
		want    int
	}{
		{"ascii", "a", 1},
		{"cjk", "漢", 2},
		{"combining accent", "é", 1},
		{"emoji presentation selector forces wide", "☁️", 2},
		{"empty", "", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := graphemeClusterWidth([]rune(tc.cluster)); got != tc.want {
				t.Errorf("graphemeClusterWidth(%q) = %d, want %d", tc.cluster, got, tc.want)
			}
		})
	}
}

func TestGraphemeClusters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"ascii", "abc", []string{"a", "b", "c"}},
		{"mixed width", "a漢b", []string{"a", "漢", "b"}},
		{"combining stays attached", "éx", []string{"é", "x"}},
		{"emoji with modifier", "\U0001F44D\U0001F3FD", []string{"\U0001F44D\U0001F3FD"}},
		{"empty", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := graphemeClusters(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("graphemeClusters(%q) = %d clusters, want %d", tc.text, len(got), len(tc.want))
			}
			for i := range got {
				if string(got[i]) != tc.want[i] {
					t.Errorf("cluster %d = %q, want %q", i, string(got[i]), tc.want[i])
				}
			}
		})
	}
}
