package domain

import "testing"

func TestNormalizeCPF_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"52998224725", "52998224725"},
		{"529.982.247-25", "52998224725"},
		{"111.444.777-35", "11144477735"},
	}
	for _, tc := range cases {
		got, err := NormalizeCPF(tc.in)
		if err != nil {
			t.Fatalf("NormalizeCPF(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeCPF(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeCPF_Invalid(t *testing.T) {
	cases := []string{
		"",
		"1234567890",     // too short
		"123456789012",   // too long
		"11111111111",    // all same digits
		"52998224724",    // wrong second check digit
		"52998224735",    // wrong first check digit
		"529.982.247-2x", // strips to 10 digits
	}
	for _, in := range cases {
		if _, err := NormalizeCPF(in); err != ErrInvalidCPF {
			t.Fatalf("NormalizeCPF(%q): expected ErrInvalidCPF, got %v", in, err)
		}
	}
}
