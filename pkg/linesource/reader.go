// Package linesource reads newline-delimited text through a single reused
// buffer.
package linesource

import (
	"bufio"
	"errors"
	"io"
)

const defaultBufferSize = 64 * 1024

// Reader yields successive lines of r with the trailing "\n" and one
// trailing "\r" removed. Lines may be of any length.
//
// The slice returned by Next aliases internal storage and is only valid until
// the next call to Next or Close.
type Reader struct {
	br   *bufio.Reader
	long []byte
	err  error
	done bool
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, defaultBufferSize)}
}

// Next returns the next line. It returns false at end of stream or on a read
// error; Err distinguishes the two.
func (r *Reader) Next() ([]byte, bool) {
	if r.done {
		return nil, false
	}

	line, err := r.br.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		// The line does not fit into the bufio buffer, spill into r.long.
		r.long = append(r.long[:0], line...)
		for errors.Is(err, bufio.ErrBufferFull) {
			line, err = r.br.ReadSlice('\n')
			r.long = append(r.long, line...)
		}
		line = r.long
	}

	if err != nil {
		r.done = true
		if !errors.Is(err, io.EOF) {
			r.err = err
			return nil, false
		}
		if len(line) == 0 {
			return nil, false
		}
	}

	return trimEOL(line), true
}

// Err returns the first non-EOF error encountered by Next.
func (r *Reader) Err() error {
	return r.err
}

// Close releases the line buffers. Next reports end of stream afterwards.
func (r *Reader) Close() {
	r.done = true
	r.long = nil
	r.br = nil
}

func trimEOL(line []byte) []byte {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	if n > 0 && line[n-1] == '\r' {
		n--
	}
	return line[:n]
}
