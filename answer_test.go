package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClueID(t *testing.T) {
	cases := []struct {
		name      string
		clue      string
		num       int
		direction string
		wantErr   bool
	}{
		{name: "simple across", clue: "14a", num: 14, direction: "a"},
		{name: "simple down", clue: "3d", num: 3, direction: "d"},
		{name: "uppercase direction", clue: "7D", num: 7, direction: "d"},
		{name: "surrounding whitespace", clue: " 21a ", num: 21, direction: "a"},
		{name: "empty", clue: "", wantErr: true},
		{name: "direction only", clue: "a", wantErr: true},
		{name: "zero number", clue: "0a", wantErr: true},
		{name: "negative number", clue: "-1d", wantErr: true},
		{name: "bad direction", clue: "5x", wantErr: true},
		{name: "no number", clue: "cat", wantErr: true},
		{name: "number only", clue: "15", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			num, direction, err := ParseClueID(tc.clue)

			if tc.wantErr {
				require.ErrorIs(t, err, errInvalidClueID)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.num, num)
			assert.Equal(t, tc.direction, direction)
		})
	}
}

func TestParseAnswer(t *testing.T) {
	cases := []struct {
		name   string
		answer string
		want   []string
	}{
		{name: "empty", answer: "", want: nil},
		{name: "plain word", answer: "cat", want: []string{"C", "A", "T"}},
		{name: "whitespace skipped", answer: "red velvet", want: []string{"R", "E", "D", "V", "E", "L", "V", "E", "T"}},
		{name: "rebus group", answer: "(RED)V", want: []string{"RED", "V"}},
		{name: "lowercase rebus", answer: "(red)v", want: []string{"RED", "V"}},
		{name: "unknown markers", answer: "..s", want: []string{"", "", "S"}},
		{name: "dot inside group is literal", answer: "(A.B)", want: []string{"A.B"}},
		{name: "empty group", answer: "()", want: []string{""}},
		{name: "unterminated group consumes rest", answer: "A(BCD", want: []string{"A", "BCD"}},
		{name: "stray close paren ignored", answer: ")ab", want: []string{"A", "B"}},
		{name: "nested open is literal", answer: "(A(B)", want: []string{"A(B"}},
		{name: "groups and letters mixed", answer: "a(bc)d.e", want: []string{"A", "BC", "D", "", "E"}},
		{name: "whitespace inside group skipped", answer: "(a b)c", want: []string{"AB", "C"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseAnswer(tc.answer))
		})
	}
}
