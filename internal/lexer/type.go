package lexer

// TokenType defines the token kinds produced by the lexer.
type TokenType int

const (
	TokenLeftParen  TokenType = iota // '('
	TokenRightParen                  // ')'
	TokenSemicolon                   // ';'
	TokenTag                         // alphanumeric/underscore run
	TokenValue                       // bracketed span, brackets stripped
	TokenEOF                         // end of input
)

func (t TokenType) String() string {
	switch t {
	case TokenLeftParen:
		return "left parenthesis"
	case TokenRightParen:
		return "right parenthesis"
	case TokenSemicolon:
		return "semicolon"
	case TokenTag:
		return "tag"
	case TokenValue:
		return "value"
	case TokenEOF:
		return "end of input"
	}
	return "unknown"
}

// Token is a single lexical token. Start and End are byte offsets into
// the underlying stream, half-open, kept for diagnostics.
type Token struct {
	Type  TokenType
	Value string
	Start int
	End   int
}
