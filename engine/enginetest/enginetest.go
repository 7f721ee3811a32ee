// Package enginetest provides a scripted engine implementation for tests.
//
// The engine yields pre-built trees in order and can inject a failure at
// every step of the boundary: load, tokenizer construction, tokenization,
// tagging and parsing.
package enginetest

import (
	"fmt"
	"io"

	"github.com/revelaction/udpipe-go/engine"
)

// Engine is a scripted engine.Engine.
type Engine struct {
	// LoadErr makes Load fail.
	LoadErr error

	// Res is the resource Load hands out. A nil Res yields an empty
	// resource (a valid model with no sentences).
	Res *Resource
}

var _ engine.Engine = (*Engine)(nil)

func (e *Engine) Load(r io.Reader) (engine.Resource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if e.LoadErr != nil {
		return nil, e.LoadErr
	}

	res := e.Res
	if res == nil {
		res = &Resource{}
	}
	res.ModelData = data
	return res, nil
}

// Resource is a scripted engine.Resource. The zero value is a valid
// model whose sessions yield no sentences.
type Resource struct {
	// ModelData is what Load read through the caller's view.
	ModelData []byte

	// Trees are the sentences each tokenizer yields, in order.
	Trees []engine.Tree

	// NewTokenizerErr makes session construction fail.
	NewTokenizerErr error

	// TokenizeErr ends tokenization with a failure once Trees are
	// exhausted, instead of a clean end of text.
	TokenizeErr error

	// TagErr/ParseErr fail the TagAt-th / ParseAt-th call (0-based).
	TagErr   error
	TagAt    int
	ParseErr error
	ParseAt  int

	// CloseCount counts Close calls, for double-release assertions.
	CloseCount int

	tagCalls   int
	parseCalls int
}

var _ engine.Resource = (*Resource)(nil)

func (r *Resource) NewTokenizer() (engine.Tokenizer, error) {
	if r.NewTokenizerErr != nil {
		return nil, r.NewTokenizerErr
	}
	return &tokenizer{res: r}, nil
}

func (r *Resource) Tag(t *engine.Tree) error {
	call := r.tagCalls
	r.tagCalls++
	if r.TagErr != nil && call == r.TagAt {
		return r.TagErr
	}
	return nil
}

func (r *Resource) Parse(t *engine.Tree) error {
	call := r.parseCalls
	r.parseCalls++
	if r.ParseErr != nil && call == r.ParseAt {
		return r.ParseErr
	}
	return nil
}

func (r *Resource) Close() error {
	r.CloseCount++
	if r.CloseCount > 1 {
		return fmt.Errorf("resource closed %d times", r.CloseCount)
	}
	return nil
}

type tokenizer struct {
	res *Resource
	pos int

	// Text is what SetText received.
	Text string
}

var _ engine.Tokenizer = (*tokenizer)(nil)

func (tk *tokenizer) SetText(text string) {
	tk.Text = text
}

func (tk *tokenizer) Next(t *engine.Tree) (bool, error) {
	if tk.pos >= len(tk.res.Trees) {
		if tk.res.TokenizeErr != nil {
			return false, tk.res.TokenizeErr
		}
		return false, nil
	}

	src := &tk.res.Trees[tk.pos]
	tk.pos++

	t.Reset()
	t.Words = append(t.Words, src.Words...)
	t.MultiwordTokens = append(t.MultiwordTokens, src.MultiwordTokens...)
	t.Comments = append(t.Comments, src.Comments...)
	return true, nil
}
