package genotype_test

import (
	"testing"

	"github.com/grailbio/genoconv/genotype"
	"github.com/grailbio/testutil/expect"
)

func TestNormalizeCall(t *testing.T) {
	tests := []struct {
		call   string
		want   string
		wantOK bool
	}{
		{"", "NN", true},
		{"A", "AA", true},
		{"AG", "AG", true},
		{"A/G", "AG", true},
		{"A:G", "AG", true},
		{"T", "TT", true},
		{"+-", "+-", true},
		{"-", "--", true},
		{"NN", "NN", true},
		{"?", "NN", true},
		{"0", "NN", true},
		{"?G", "NG", true},
		{"A0", "AN", true},
		{"??", "NN", true},
		{"C?", "CN", true},
		{"XY", "NN", false},
		{"aG", "NN", false},
		{"Ag", "NN", false},
		{"A/", "NN", false},
		{"Uncallable", "NN", false},
		{"1", "NN", false},
	}
	for _, test := range tests {
		got, ok := genotype.NormalizeCall(test.call)
		expect.EQ(t, got, test.want, "call %q", test.call)
		expect.EQ(t, ok, test.wantOK, "call %q", test.call)
	}
}

// TestNormalizeCallAlphabet checks every one- and two-byte call over a small
// superset of the alphabet against the first/last character rule.
func TestNormalizeCallAlphabet(t *testing.T) {
	const alleles = "ACGTN+-"
	const missing = "?0"
	const other = "acgtnXZ1/ "
	valid := alleles + missing
	inSet := func(c byte, set string) bool {
		for i := 0; i < len(set); i++ {
			if set[i] == c {
				return true
			}
		}
		return false
	}
	mapped := func(c byte) byte {
		if inSet(c, missing) {
			return 'N'
		}
		return c
	}
	chars := valid + other
	for i := 0; i < len(chars); i++ {
		for j := 0; j < len(chars); j++ {
			a, b := chars[i], chars[j]
			call := string([]byte{a, b})
			got, ok := genotype.NormalizeCall(call)
			expect.EQ(t, len(got), 2, "call %q", call)
			if inSet(a, valid) && inSet(b, valid) {
				expect.True(t, ok, "call %q", call)
				expect.EQ(t, got, string([]byte{mapped(a), mapped(b)}), "call %q", call)
			} else {
				expect.False(t, ok, "call %q", call)
				expect.EQ(t, got, genotype.MissingCall, "call %q", call)
			}
		}
	}
}
