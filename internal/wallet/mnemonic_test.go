package wallet

import (
	"strings"
	"testing"
)

func TestParseMnemonic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "abandon ability able", "abandon ability able"},
		{"extra whitespace", "  abandon\tability \n able  ", "abandon ability able"},
		{"upper case", "Abandon ABILITY able", "abandon ability able"},
		{"commas", "abandon,ability, able", "abandon ability able"},
		{"numbered", "1. abandon\n2) ability\n3: able", "abandon ability able"},
		{"bullets", "- abandon\n* ability\n• able", "abandon ability able"},
		{"numbered columns", "   1. abandon      2. ability \n   3. able", "abandon ability able"},
		{"numbered without space", "1.abandon 2)ability 3:able", "abandon ability able"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMnemonic(tt.input)
			if got.String() != tt.want {
				t.Errorf("ParseMnemonic(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestParseMnemonic_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		if m := ParseMnemonic(in); m != nil {
			t.Errorf("ParseMnemonic(%q) = %v, want nil", in, m)
		}
	}
}

func TestMnemonic_Helpers(t *testing.T) {
	m := Mnemonic{"abandon", "ability", "able"}
	if m.Last() != "able" {
		t.Errorf("Last() = %q, want able", m.Last())
	}
	if Mnemonic(nil).Last() != "" {
		t.Error("Last() of empty phrase should be empty")
	}
	if !m.Equal(Mnemonic{"abandon", "ability", "able"}) {
		t.Error("identical phrases should be equal")
	}
	if m.Equal(Mnemonic{"ability", "abandon", "able"}) {
		t.Error("order should matter")
	}
	if m.Equal(m[:2]) {
		t.Error("different lengths should not be equal")
	}
	if !strings.Contains(m.String(), "ability able") {
		t.Errorf("String() = %q", m.String())
	}
}

func TestMnemonic_Zero(t *testing.T) {
	m := Mnemonic{"abandon", "ability"}
	m.Zero()
	for i, w := range m {
		if w != "" {
			t.Errorf("word %d = %q after Zero()", i, w)
		}
	}
}
