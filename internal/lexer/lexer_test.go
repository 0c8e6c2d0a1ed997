package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/q12we34rt5/tabularpcn/internal/stream"
	"github.com/q12we34rt5/tabularpcn/internal/types"
)

func lexAll(t *testing.T, input string) ([]Token, error) {
	t.Helper()
	l := New(stream.NewStringInput(input))
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func TestNextToken(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "single node",
			input: "(;B[a])",
			expected: []Token{
				{Type: TokenLeftParen, Value: "(", Start: 0, End: 1},
				{Type: TokenSemicolon, Value: ";", Start: 1, End: 2},
				{Type: TokenTag, Value: "B", Start: 2, End: 3},
				{Type: TokenValue, Value: "a", Start: 4, End: 6},
				{Type: TokenRightParen, Value: ")", Start: 6, End: 7},
				{Type: TokenEOF, Start: 7, End: 7},
			},
		},
		{
			name:  "escaped bracket keeps backslash",
			input: `C[a\]b]`,
			expected: []Token{
				{Type: TokenTag, Value: "C", Start: 0, End: 1},
				{Type: TokenValue, Value: `a\]b`, Start: 2, End: 7},
				{Type: TokenEOF, Start: 7, End: 7},
			},
		},
		{
			name:  "escaped backslash does not re-arm escaping",
			input: `C[a\\]`,
			expected: []Token{
				{Type: TokenTag, Value: "C", Start: 0, End: 1},
				{Type: TokenValue, Value: `a\\`, Start: 2, End: 6},
				{Type: TokenEOF, Start: 6, End: 6},
			},
		},
		{
			name:  "whitespace skipped outside brackets",
			input: "(\n ;\tAB_1 [ x ])",
			expected: []Token{
				{Type: TokenLeftParen, Value: "(", Start: 0, End: 1},
				{Type: TokenSemicolon, Value: ";", Start: 3, End: 4},
				{Type: TokenTag, Value: "AB_1", Start: 5, End: 9},
				{Type: TokenValue, Value: " x ", Start: 11, End: 15},
				{Type: TokenRightParen, Value: ")", Start: 15, End: 16},
				{Type: TokenEOF, Start: 16, End: 16},
			},
		},
		{
			name:  "multiple values",
			input: "AB[aa][bb]",
			expected: []Token{
				{Type: TokenTag, Value: "AB", Start: 0, End: 2},
				{Type: TokenValue, Value: "aa", Start: 3, End: 6},
				{Type: TokenValue, Value: "bb", Start: 7, End: 10},
				{Type: TokenEOF, Start: 10, End: 10},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tokens, err := lexAll(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestNextTokenErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		input     string
		wantStart int
		wantEnd   int
	}{
		{name: "invalid character", input: "(*", wantStart: 1, wantEnd: 2},
		{name: "unterminated value", input: "(;C[hello", wantStart: 9, wantEnd: 9},
		{name: "unterminated escape", input: `(;C[x\`, wantStart: 6, wantEnd: 6},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := lexAll(t, tt.input)
			require.Error(t, err)
			var lexErr *types.LexicalError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.wantStart, lexErr.Start)
			assert.Equal(t, tt.wantEnd, lexErr.End)
		})
	}
}

func TestProgressCallback(t *testing.T) {
	t.Parallel()
	input := "(;B[a])"
	var calls []int
	l := New(stream.NewStringInput(input), WithProgress(len(input), func(pos, total int) {
		assert.Equal(t, len(input), total)
		calls = append(calls, pos)
	}))
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		if tok.Type == TokenEOF {
			break
		}
	}
	// one callback per non-EOF token, positions non-decreasing
	assert.Len(t, calls, 5)
	for i := 1; i < len(calls); i++ {
		assert.GreaterOrEqual(t, calls[i], calls[i-1])
	}
}

func TestEOFIsSticky(t *testing.T) {
	t.Parallel()
	l := New(stream.NewStringInput(""))
	for i := 0; i < 3; i++ {
		tok, err := l.NextToken()
		require.NoError(t, err)
		assert.Equal(t, TokenEOF, tok.Type)
	}
	assert.Equal(t, TokenEOF, l.CurrentToken().Type)
}
