package connutil

import "testing"

func TestParseValues(t *testing.T) {
	cases := []struct {
		in   string
		want []float64
	}{
		{"1.5", []float64{1.5}},
		{"1.5,2.5,3.5", []float64{1.5, 2.5, 3.5}},
		{"  0.01 ; 0.02 ", []float64{0.01, 0.02}},
		{"1e-3\t2e-3", []float64{0.001, 0.002}},
	}
	for _, c := range cases {
		got, err := ParseValues(c.in)
		if err != nil {
			t.Fatalf("ParseValues(%q): %v", c.in, err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("ParseValues(%q) = %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("ParseValues(%q)[%d] = %g, want %g", c.in, i, got[i], c.want[i])
			}
		}
	}
}

func TestParseValuesRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1.5,oops"} {
		if _, err := ParseValues(in); err == nil {
			t.Errorf("ParseValues(%q): expected error", in)
		}
	}
}
