package perfscript

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrUnexpectedEOL reports a line that ends before a required field.
	ErrUnexpectedEOL = errors.New("unexpected EOL")
	// ErrMissingPID reports a header without a digit-leading token.
	ErrMissingPID = errors.New("expected PID")
	// ErrMissingComm reports a header whose process name is empty.
	ErrMissingComm = errors.New("missing process name")
	// ErrInvalidPID reports a PID or PID/TID field that is not an integer.
	ErrInvalidPID = errors.New("failed to parse PID or PID/TID")
	// ErrOrphanFrame reports a frame line outside of any sample.
	ErrOrphanFrame = errors.New("frame outside of a sample")
)

// Header is the decoded first line of a sample.
type Header struct {
	// Comm is the process name. It aliases the input line.
	Comm   []byte
	PID    int
	TID    int
	HasTID bool
}

type lineKind int

const (
	kindHeader lineKind = iota
	kindFrame
	kindBlank
	kindComment
)

func classify(line []byte) lineKind {
	switch {
	case len(line) == 0:
		return kindBlank
	case line[0] == '\t':
		return kindFrame
	case line[0] == '#':
		return kindComment
	default:
		return kindHeader
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func skipSpaces(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
		i++
	}
	return i
}

// parseFrame extracts the symbol from a frame line:
//
//	\t<ip> <symbol, possibly with spaces>[ (<module>)]
//
// The symbol is everything after the ip token, minus a trailing
// parenthesized module annotation.
func parseFrame(line []byte) ([]byte, error) {
	i := skipSpaces(line, 1)
	ip := bytes.IndexByte(line[i:], ' ')
	if i == len(line) || ip < 0 {
		return nil, fmt.Errorf("%w: expected symbol after address", ErrUnexpectedEOL)
	}

	rest := bytes.TrimRight(line[i+ip:], " \t")
	start := skipSpaces(rest, 0)
	if start == len(rest) {
		return nil, fmt.Errorf("%w: expected symbol after address", ErrUnexpectedEOL)
	}
	rest = rest[start:]

	if rest[len(rest)-1] == ')' {
		if end := bytes.LastIndex(rest, []byte(" (")); end >= 0 {
			rest = bytes.TrimRight(rest[:end], " \t")
		}
	}
	return rest, nil
}

// parseHeader decodes a sample header:
//
//	<comm, possibly with spaces> <pid>[/<tid>] <ignored...>
//
// The first token is always part of comm. The PID field is the first later
// token that starts with a digit, so a digit-leading word inside comm is
// taken as the PID.
func parseHeader(line []byte) (Header, error) {
	var (
		commEnd  = -1
		pidStart = -1
	)
	for i := 0; ; {
		sp := bytes.IndexByte(line[i:], ' ')
		if sp < 0 {
			return Header{}, ErrMissingPID
		}
		next := skipSpaces(line, i+sp)
		if next == len(line) {
			return Header{}, fmt.Errorf("%w: %w", ErrUnexpectedEOL, ErrMissingPID)
		}
		if isDigit(line[next]) {
			commEnd, pidStart = i+sp, next
			break
		}
		i = next
	}

	comm := bytes.Trim(line[:commEnd], " \t")
	if len(comm) == 0 {
		return Header{}, ErrMissingComm
	}

	field := line[pidStart:]
	if sp := bytes.IndexByte(field, ' '); sp >= 0 {
		field = field[:sp]
	}

	h := Header{Comm: comm}
	pid, tid, hasTID := field, []byte(nil), false
	if slash := bytes.IndexByte(field, '/'); slash >= 0 {
		pid, tid, hasTID = field[:slash], field[slash+1:], true
	}

	var err error
	if h.PID, err = strconv.Atoi(string(pid)); err != nil {
		return Header{}, fmt.Errorf("%w: %q", ErrInvalidPID, field)
	}
	if hasTID {
		if h.TID, err = strconv.Atoi(string(tid)); err != nil {
			return Header{}, fmt.Errorf("%w: %q", ErrInvalidPID, field)
		}
		h.HasTID = true
	}
	return h, nil
}
