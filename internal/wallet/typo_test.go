package wallet

import "testing"

func TestSuggestWord(t *testing.T) {
	d := testDeriver(t)

	tests := []struct {
		input string
		want  string
	}{
		{"abandon", "abandon"},
		{"ABANDON", "abandon"},
		{"abandn", "abandon"},
		{"zooo", "zoo"},
		{"qqqqqqqqqq", ""},
	}

	for _, tt := range tests {
		if got := d.SuggestWord(tt.input); got != tt.want {
			t.Errorf("SuggestWord(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDetectTypos(t *testing.T) {
	d := testDeriver(t)

	m := mustMnemonic(t, vectors[0].words)
	if typos := d.DetectTypos(m); len(typos) != 0 {
		t.Fatalf("valid phrase reported %d typos", len(typos))
	}

	m[2] = "abandn"
	m[5] = "qqqqqqqqqq"
	typos := d.DetectTypos(m)
	if len(typos) != 2 {
		t.Fatalf("got %d typos, want 2", len(typos))
	}
	if typos[0].Index != 2 || typos[0].Suggestion != "abandon" || typos[0].Distance != 1 {
		t.Errorf("typo 0 = %+v", typos[0])
	}
	if typos[1].Index != 5 || typos[1].Suggestion != "" {
		t.Errorf("typo 1 = %+v", typos[1])
	}

	want := "Word 3: 'abandn' - did you mean 'abandon'?\n" +
		"Word 6: 'qqqqqqqqqq' is not in the wordlist"
	if got := FormatTypoSuggestions(typos); got != want {
		t.Errorf("FormatTypoSuggestions() = %q, want %q", got, want)
	}
}
