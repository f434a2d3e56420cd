package pressdoc

import (
	"fmt"
	"regexp"
	"strings"
)

// digitDot is a private-use rune standing in for a period that follows a
// digit while sentences are split.
const digitDot = "\uE000"

var (
	digitDotRe    = regexp.MustCompile(`(\d)\.`)
	terminatorsRe = regexp.MustCompile(`[.!?]+`)
)

// SplitSentences splits text on runs of '.', '!' and '?'. A period directly
// after a digit never ends a sentence, so dates such as 2023.12.31 and list
// markers such as "1." stay intact. Fragments are trimmed and empty ones are
// dropped. Returns nil when nothing remains.
func SplitSentences(text string) []string {
	if text == "" {
		return nil
	}

	protected := digitDotRe.ReplaceAllString(text, "${1}"+digitDot)

	var sentences []string
	for _, part := range terminatorsRe.Split(protected, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sentences = append(sentences, strings.ReplaceAll(part, digitDot, "."))
	}
	return sentences
}

// CollapseSpace replaces every run of whitespace with a single space and
// trims the result.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TablePlaceholder returns the content marker for the n-th table (1-based).
func TablePlaceholder(n int) string {
	return fmt.Sprintf("{table%d}", n)
}

// InterleaveTables inserts one placeholder per table into the content
// sentences. The i-th placeholder follows the i-th sentence; when there are
// more tables than sentences the remaining placeholders are appended at the
// end with continuing indices. Exactly tableCount placeholders are emitted.
func InterleaveTables(sentences []string, tableCount int) []string {
	if tableCount <= 0 {
		return sentences
	}

	out := make([]string, 0, len(sentences)+tableCount)
	n := 0
	for _, s := range sentences {
		out = append(out, s)
		if n < tableCount {
			n++
			out = append(out, TablePlaceholder(n))
		}
	}
	for n < tableCount {
		n++
		out = append(out, TablePlaceholder(n))
	}
	return out
}
