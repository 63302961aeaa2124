// Package textnorm turns the raw strings of a question bank row into display text.
package textnorm

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"reliance-drill-service/internal/domain"
)

const (
	optionMarker         = "A."
	explanationDelimiter = " - "
)

var afterPeriod = regexp.MustCompile(`(\.\s*)([a-zA-Z])`)

// SplitStem separates the question stem from the option block at the first "A.".
func SplitStem(full string) (stem, block string) {
	idx := strings.Index(full, optionMarker)
	if idx < 0 {
		return full, ""
	}
	return strings.TrimSpace(full[:idx]), strings.TrimSpace(full[idx:])
}

// ParseQuestion builds the display form of a question. The stem is kept as written;
// the option block is capitalized before being split into labels.
func ParseQuestion(full string) domain.ParsedQuestion {
	stem, block := SplitStem(full)
	return domain.ParsedQuestion{
		Stem:    stem,
		Options: SplitOptions(CapitalizeAfterPeriods(block)),
	}
}

// CapitalizeAfterPeriods upper-cases every letter that follows a period and optional
// whitespace. The first character of the text is left alone.
func CapitalizeAfterPeriods(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return afterPeriod.ReplaceAllStringFunc(text, func(match string) string {
		last, size := utf8.DecodeLastRuneInString(match)
		return match[:len(match)-size] + string(unicode.ToUpper(last))
	})
}

// SplitOptions extracts the text following each of "A.", "B.", "C." and "D.". Each label
// runs until the next label's marker or the end of the block. Labels are expected in
// order; a stray or out-of-order marker shifts what later labels capture.
func SplitOptions(block string) map[string]string {
	result := make(map[string]string, len(domain.OptionLabels))
	for _, label := range domain.OptionLabels {
		result[label] = ""
	}

	pos := 0
	for pos < len(block) {
		start, idx := nextMarker(block, pos)
		if start < 0 {
			break
		}
		content := start + 2
		for content < len(block) {
			r, size := utf8.DecodeRuneInString(block[content:])
			if !unicode.IsSpace(r) {
				break
			}
			content += size
		}

		end := len(block)
		if idx+1 < len(domain.OptionLabels) {
			next := domain.OptionLabels[idx+1] + "."
			if off := strings.Index(block[content:], next); off >= 0 {
				end = content + off
			}
		}
		result[domain.OptionLabels[idx]] = strings.TrimSpace(block[content:end])
		pos = end
	}
	return result
}

// nextMarker finds the leftmost "<label>." at or after pos and returns its offset and
// the label index.
func nextMarker(block string, pos int) (int, int) {
	for i := pos; i+1 < len(block); i++ {
		if block[i+1] != '.' {
			continue
		}
		for idx, label := range domain.OptionLabels {
			if block[i] == label[0] {
				return i, idx
			}
		}
	}
	return -1, -1
}

// BuildChoiceAndExplanation joins an answer label with the part of the explanation before
// the first " - ". The rest of the explanation is returned separately.
func BuildChoiceAndExplanation(rawLabel, rawExplanation string) (choice, explanation string) {
	label := strings.TrimRight(strings.TrimSpace(rawLabel), ".")
	text := strings.TrimSpace(rawExplanation)

	first := text
	if idx := strings.Index(text, explanationDelimiter); idx >= 0 {
		first = strings.TrimSpace(text[:idx])
		explanation = strings.TrimSpace(text[idx+len(explanationDelimiter):])
	}
	return label + ". " + first, explanation
}

// Validate reports why a question could not be fully parsed. A nil error means the
// option marker was present and every label resolved to text.
func Validate(full string, parsed domain.ParsedQuestion) error {
	if !strings.Contains(full, optionMarker) {
		return fmt.Errorf("%w: no %q marker", domain.ErrMalformedQuestion, optionMarker)
	}
	var missing []string
	for _, label := range domain.OptionLabels {
		if parsed.Option(label) == "" {
			missing = append(missing, label)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: empty options %s", domain.ErrMalformedQuestion, strings.Join(missing, ","))
	}
	return nil
}
