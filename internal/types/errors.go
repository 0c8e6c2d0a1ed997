package types

import "fmt"

// LexicalError reports a malformed character stream: an invalid character
// or a bracketed value that never closes. Offsets are byte positions in
// the underlying input.
type LexicalError struct {
	Msg   string
	Start int
	End   int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error: %s at %d:%d", e.Msg, e.Start, e.End)
}

// Offsets returns the byte span of the offending input.
func (e *LexicalError) Offsets() (start, end int) { return e.Start, e.End }

// GrammarError reports a token arriving in a state that forbids it, or
// parentheses left unmatched in either direction.
type GrammarError struct {
	Msg   string
	Start int
	End   int
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar error: %s at %d:%d", e.Msg, e.Start, e.End)
}

// Offsets returns the byte span of the offending input.
func (e *GrammarError) Offsets() (start, end int) { return e.Start, e.End }
