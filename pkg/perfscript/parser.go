// Package perfscript classifies the textual output of `perf script` and
// reports each sample to a Handler.
//
// The expected input is a sequence of blocks, one per sample:
//
//	<comm> <pid>[/<tid>] <ignored...>
//	\t<ip> <symbol> (<module>)
//	...
//	<blank line>
//
// Frames are listed innermost first.
package perfscript

import (
	"github.com/sirupsen/logrus"
)

// Handler receives the samples recognized by a Parser. Byte slices passed to
// a Handler alias the current input line and are only valid for the duration
// of the call.
type Handler interface {
	// StackStart begins a sample. Parser always ends the previous sample
	// first.
	StackStart(h Header)
	// StackFrame adds the next frame of the current sample.
	StackFrame(sym []byte)
	// StackEnd completes the current sample.
	StackEnd()
}

// Source yields input lines. The returned slice is only valid until the next
// call to Next.
type Source interface {
	Next() ([]byte, bool)
	Err() error
}

// Stats counts what a Parser has seen.
type Stats struct {
	Lines     uint64
	Samples   uint64
	Frames    uint64
	Malformed uint64
}

type state int

const (
	stateIdle state = iota
	stateSample
	stateSkip // inside a block whose header was rejected
)

// Parser is a line-at-a-time state machine over perf script output.
type Parser struct {
	handler Handler
	logger  *logrus.Logger
	state   state
	stats   Stats
}

// NewParser returns a Parser delivering samples to h. Diagnostics for
// malformed lines go to logger; a nil logger logs warnings to stderr.
func NewParser(h Handler, logger *logrus.Logger) *Parser {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Parser{
		handler: h,
		logger:  logger,
	}
}

// Parse feeds every line of src to ParseLine and completes a trailing sample
// that is missing its terminating blank line. The returned error is src's
// read error, if any; malformed input is never an error.
func (p *Parser) Parse(src Source) error {
	for {
		line, ok := src.Next()
		if !ok {
			break
		}
		p.ParseLine(line)
	}
	p.Flush()
	return src.Err()
}

// ParseLine classifies a single line, without its line terminator.
func (p *Parser) ParseLine(line []byte) {
	p.stats.Lines++

	switch classify(line) {
	case kindComment:
		return

	case kindBlank:
		switch p.state {
		case stateSample:
			p.end()
		case stateSkip:
			p.state = stateIdle
		}

	case kindFrame:
		switch p.state {
		case stateIdle:
			p.malformed(line, ErrOrphanFrame)
			return
		case stateSkip:
			if p.logger.IsLevelEnabled(logrus.DebugLevel) {
				p.logger.WithField("line", string(line)).Debug("skipping frame of rejected sample")
			}
			return
		}
		sym, err := parseFrame(line)
		if err != nil {
			p.malformed(line, err)
			return
		}
		p.stats.Frames++
		p.handler.StackFrame(sym)

	case kindHeader:
		// perf script without call graphs prints no blank line between
		// samples: a header closes the open sample.
		if p.state == stateSample {
			p.end()
		}
		h, err := parseHeader(line)
		if err != nil {
			p.malformed(line, err)
			p.state = stateSkip
			return
		}
		p.state = stateSample
		p.handler.StackStart(h)
	}
}

// Flush completes a sample still open at end of input.
func (p *Parser) Flush() {
	if p.state == stateSample {
		p.end()
	}
	p.state = stateIdle
}

// Stats returns the counters accumulated so far.
func (p *Parser) Stats() Stats {
	return p.stats
}

func (p *Parser) end() {
	p.stats.Samples++
	p.state = stateIdle
	p.handler.StackEnd()
}

func (p *Parser) malformed(line []byte, err error) {
	p.stats.Malformed++
	p.logger.WithFields(logrus.Fields{
		"line":   string(line),
		"lineno": p.stats.Lines,
	}).WithError(err).Warn("invalid line")
}
