// Package parser streams annotated sentences out of a model, one pull at
// a time.
//
// A Parser is a per-text session: it borrows its Model for its whole
// lifetime, owns the tokenizer state, and yields each sentence as an
// owned sentence.Sentence that survives the session. Processing is
// synchronous and pull-based; nothing is tokenized, tagged or parsed
// until the caller asks for the next sentence, so peak memory stays
// bounded to one sentence and the caller can stop early for free.
package parser

import (
	"errors"
	"fmt"

	"github.com/revelaction/udpipe-go/engine"
	"github.com/revelaction/udpipe-go/model"
	"github.com/revelaction/udpipe-go/sentence"
)

var (
	// ErrInvalidArgument marks a session opened against a nil or
	// released model.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSessionInit marks a tokenizer that could not be constructed
	// for an otherwise valid model.
	ErrSessionInit = errors.New("session init failed")

	// ErrTokenize marks a sentence the tokenizer could not produce.
	ErrTokenize = errors.New("tokenize failed")

	// ErrTag marks a sentence the engine rejected during tagging.
	ErrTag = errors.New("tag failed")

	// ErrParse marks a sentence the engine rejected during dependency
	// parsing.
	ErrParse = errors.New("parse failed")
)

// Parser is a streaming parse session over one input text.
//
// Its states are Created -> Active -> Finished or Errored; both terminal
// states are absorbing. A Parser is tied to the goroutine driving its
// pulls and must not outlive its Model.
type Parser struct {
	m   *model.Model
	tok engine.Tokenizer

	// scratch tree, reused across pulls
	tree engine.Tree

	finished bool
	err      error
}

// New opens a session for text against m. The text is referenced, not
// copied; string immutability guarantees the session never sees it
// change. Empty text is a valid session that yields zero sentences.
func New(m *model.Model, text string) (*Parser, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidArgument)
	}
	res := m.Resource()
	if res == nil {
		return nil, fmt.Errorf("%w: model already released", ErrInvalidArgument)
	}

	tok, err := res.NewTokenizer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionInit, err)
	}
	tok.SetText(text)

	return &Parser{m: m, tok: tok}, nil
}

// Next pulls the next sentence.
//
// It returns (nil, nil) at clean end of text and keeps returning
// (nil, nil) on every later call. On a tokenize, tag or parse failure it
// returns the error once, moves the session to its errored terminal
// state, and behaves like an exhausted session afterwards; Err reports
// the failure for as long as the session lives.
func (p *Parser) Next() (*sentence.Sentence, error) {
	if p.finished {
		return nil, nil
	}

	p.tree.Reset()

	ok, err := p.tok.Next(&p.tree)
	if err != nil {
		return nil, p.fail(ErrTokenize, err)
	}
	if !ok {
		p.finished = true
		return nil, nil
	}

	res := p.m.Resource()
	if res == nil {
		return nil, p.fail(ErrInvalidArgument, errors.New("model released during session"))
	}

	if err := res.Tag(&p.tree); err != nil {
		return nil, p.fail(ErrTag, err)
	}

	if err := res.Parse(&p.tree); err != nil {
		return nil, p.fail(ErrParse, err)
	}

	s := sentence.Flatten(&p.tree)
	return &s, nil
}

// Err returns the failure that terminated the session, or nil if the
// session is still active or ended by clean exhaustion. Checking Err is
// the only way to tell a failed session from an exhausted one after Next
// returned nil.
func (p *Parser) Err() error {
	return p.err
}

// Close releases the session's tokenizer state. The owning Model is not
// affected. Pulls after Close behave like pulls after exhaustion.
func (p *Parser) Close() {
	p.finished = true
	p.tok = nil
	p.tree = engine.Tree{}
}

func (p *Parser) fail(class, cause error) error {
	p.err = fmt.Errorf("%w: %v", class, cause)
	p.finished = true
	return p.err
}

// Collect eagerly drains a whole text into a slice of sentences. It is
// the convenience path for callers that do not need streaming.
func Collect(m *model.Model, text string) ([]sentence.Sentence, error) {
	p, err := New(m, text)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	var out []sentence.Sentence
	for {
		s, err := p.Next()
		if err != nil {
			return nil, err
		}
		if s == nil {
			return out, nil
		}
		out = append(out, *s)
	}
}
