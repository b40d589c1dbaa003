package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var errInvalidClueID = errors.New("invalid clue id")

// unknownMarker stands for "leave this cell alone" in a submitted answer,
// so partially known answers like "....S" can be entered without clobbering
// earlier guesses.
const unknownMarker = '.'

// ParseClueID splits a clue identifier like "14a" or "7D" into its number
// and direction. The final character must be a or d (either case) and the
// rest must parse as a positive integer.
func ParseClueID(clue string) (int, string, error) {
	clue = strings.ToLower(strings.TrimSpace(clue))
	if len(clue) < 2 {
		return 0, "", fmt.Errorf("%w: %q", errInvalidClueID, clue)
	}

	direction := clue[len(clue)-1:]
	if direction != "a" && direction != "d" {
		return 0, "", fmt.Errorf("%w: %q", errInvalidClueID, clue)
	}

	num, err := strconv.Atoi(clue[:len(clue)-1])
	if err != nil || num <= 0 {
		return 0, "", fmt.Errorf("%w: %q", errInvalidClueID, clue)
	}

	return num, direction, nil
}

// ParseAnswer turns raw answer text into per-cell tokens. Parentheses group
// characters into a single rebus token, so "(RED)VELVET" yields
// ["RED","V","E","L","V","E","T"] and fits a 7-cell clue. The unknown
// marker "." yields an empty token, meaning that cell keeps whatever value
// it already has; inside a rebus group "." is a literal character. Input is
// uppercased and whitespace is ignored everywhere, which makes answers like
// "red velvet cake" natural to type.
//
// Malformed grouping never fails: an unterminated "(" consumes the rest of
// the input into its token, a ")" outside a group is ignored, and an empty
// "()" yields an empty token.
func ParseAnswer(answer string) []string {
	var cells []string
	var inside bool

	for _, c := range strings.ToUpper(answer) {
		switch {
		case unicode.IsSpace(c):
			continue

		case inside && c != ')':
			cells[len(cells)-1] += string(c)

		case c == ')':
			inside = false

		case c == '(':
			inside = true
			cells = append(cells, "")

		case c == unknownMarker:
			cells = append(cells, "")

		default:
			cells = append(cells, string(c))
		}
	}

	return cells
}
