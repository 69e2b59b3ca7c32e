// Package slots extracts typed parameters from normalized command text.
//
// Every extractor is a pure function of its input. Failures are returned as
// EXTRACTION_FAILED errors whose slot detail names what was missing, so
// callers can choose a usage hint without inspecting strings.
package slots

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Unit is a duration unit.
type Unit string

const (
	Minute Unit = "minute"
	Second Unit = "second"
	Hour   Unit = "hour"
)

// Duration is an amount of time as written in the command.
type Duration struct {
	Amount int
	Unit   Unit
	// Word is the unit token as the user wrote it ("minutes", "hrs").
	Word string
}

// Seconds converts the duration to seconds.
func (d Duration) Seconds() int {
	switch d.Unit {
	case Hour:
		return d.Amount * 3600
	case Second:
		return d.Amount
	default:
		return d.Amount * 60
	}
}

// Reminder is the slot set for SetReminder.
type Reminder struct {
	Task string
	In   Duration
}

// City is the slot for GetWeather.
type City struct {
	Name string
}

// Percent is a "<percent>% of <amount>" calculation.
type Percent struct {
	Percent float64
	Amount  float64
}

// Result returns Percent percent of Amount.
func (p Percent) Result() float64 {
	return p.Percent * p.Amount / 100
}

// TranslationQuery is the slot set for Translate.
// Phrase may be empty when only the language was recognized.
type TranslationQuery struct {
	Phrase   string
	Language string
}

var titleCaser = cases.Title(language.English)

// Title capitalizes each word of s for display ("new york" → "New York").
func Title(s string) string {
	return titleCaser.String(s)
}

// bare strips punctuation that commonly trails a token.
func bare(w string) string {
	return strings.Trim(w, ",.!?:;\"'")
}

// hasSeqAt reports whether seq matches words starting at i, ignoring trailing punctuation.
func hasSeqAt(words, seq []string, i int) bool {
	if len(seq) == 0 || i+len(seq) > len(words) {
		return false
	}
	for j, s := range seq {
		if bare(words[i+j]) != s {
			return false
		}
	}
	return true
}

// removePhrases drops every occurrence of each phrase, matched on whole words.
func removePhrases(words []string, phrases ...string) []string {
	for _, p := range phrases {
		seq := strings.Fields(p)
		out := make([]string, 0, len(words))
		for i := 0; i < len(words); {
			if hasSeqAt(words, seq, i) {
				i += len(seq)
				continue
			}
			out = append(out, words[i])
			i++
		}
		words = out
	}
	return words
}

// removeWords drops every token whose bare form is in stop.
func removeWords(words []string, stop ...string) []string {
	return lo.Reject(words, func(w string, _ int) bool {
		return lo.Contains(stop, bare(w))
	})
}

// trimEdges drops leading and trailing tokens whose bare form is in edge.
func trimEdges(words []string, edge ...string) []string {
	start, end := 0, len(words)
	for start < end && lo.Contains(edge, bare(words[start])) {
		start++
	}
	for end > start && lo.Contains(edge, bare(words[end-1])) {
		end--
	}
	return words[start:end]
}

// join rebuilds text from tokens and trims stray separators.
func join(words []string) string {
	return strings.Trim(strings.Join(words, " "), " ,:;")
}
