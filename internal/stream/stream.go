package stream

import (
	"bufio"
	"os"
)

// Input is a byte stream with single-byte lookahead and pushback.
// Get and Peek return 0 once the stream is exhausted; SGF is a text
// format, so a NUL byte in the input is treated as end of stream.
type Input interface {
	Peek() byte
	Get() byte
	Unget()
	Tell() int
}

// StringInput reads from an in-memory string.
type StringInput struct {
	s   string
	pos int
}

func NewStringInput(s string) *StringInput {
	return &StringInput{s: s}
}

func (in *StringInput) Peek() byte {
	if in.pos >= len(in.s) {
		return 0
	}
	return in.s[in.pos]
}

func (in *StringInput) Get() byte {
	if in.pos >= len(in.s) {
		return 0
	}
	c := in.s[in.pos]
	in.pos++
	return c
}

func (in *StringInput) Unget() {
	if in.pos > 0 {
		in.pos--
	}
}

func (in *StringInput) Tell() int { return in.pos }

// Len returns the total input length in bytes.
func (in *StringInput) Len() int { return len(in.s) }

// FileInput reads from a file through a buffered reader, tracking the
// current byte offset itself since bufio hides the file position.
type FileInput struct {
	f    *os.File
	r    *bufio.Reader
	pos  int
	size int
}

func NewFileInput(path string) (*FileInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FileInput{f: f, r: bufio.NewReader(f), size: int(info.Size())}, nil
}

func (in *FileInput) Peek() byte {
	b, err := in.r.Peek(1)
	if err != nil {
		return 0
	}
	return b[0]
}

func (in *FileInput) Get() byte {
	c, err := in.r.ReadByte()
	if err != nil {
		return 0
	}
	in.pos++
	return c
}

func (in *FileInput) Unget() {
	if err := in.r.UnreadByte(); err == nil {
		in.pos--
	}
}

func (in *FileInput) Tell() int { return in.pos }

// Size returns the total file size in bytes.
func (in *FileInput) Size() int { return in.size }

func (in *FileInput) Close() error { return in.f.Close() }
