package wallet

import (
	"math"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// MaxTypoDistance is the largest edit distance still offered as a suggestion.
const MaxTypoDistance = 2

// TypoInfo describes a word that is not in the wordlist.
type TypoInfo struct {
	// Index is the 0-based word position.
	Index int
	// Word is the word as given.
	Word string
	// Suggestion is the closest wordlist entry, or "" if none is close enough.
	Suggestion string
	// Distance is the edit distance to Suggestion.
	Distance int
}

// SuggestWord returns the wordlist entry closest to input by Levenshtein
// distance, or "" if nothing is within MaxTypoDistance.
func (d *Deriver) SuggestWord(input string) string {
	input = strings.ToLower(input)
	if _, ok := d.index[input]; ok {
		return input
	}

	minDist := math.MaxInt
	var suggestion string
	for _, word := range d.wordlist {
		dist := levenshtein.ComputeDistance(input, word)
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// DetectTypos reports every word of m that is not in the wordlist, with a
// suggested correction where one is close enough.
func (d *Deriver) DetectTypos(m Mnemonic) []TypoInfo {
	var typos []TypoInfo
	for i, word := range m {
		if _, ok := d.index[word]; ok {
			continue
		}
		info := TypoInfo{Index: i, Word: word}
		if s := d.SuggestWord(word); s != "" {
			info.Suggestion = s
			info.Distance = levenshtein.ComputeDistance(word, s)
		}
		typos = append(typos, info)
	}
	return typos
}

// FormatTypoSuggestions renders typos one per line, with 1-based positions.
func FormatTypoSuggestions(typos []TypoInfo) string {
	var b strings.Builder
	for i, typo := range typos {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("Word ")
		b.WriteString(strconv.Itoa(typo.Index + 1))
		b.WriteString(": '")
		b.WriteString(typo.Word)
		b.WriteByte('\'')
		if typo.Suggestion != "" {
			b.WriteString(" - did you mean '")
			b.WriteString(typo.Suggestion)
			b.WriteString("'?")
		} else {
			b.WriteString(" is not in the wordlist")
		}
	}
	return b.String()
}
