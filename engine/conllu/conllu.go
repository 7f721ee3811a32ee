// Package conllu implements the engine boundary over pre-annotated
// CoNLL-U input.
//
// It performs no linguistics of its own: the "model" is a small JSON
// options blob, the tokenizer splits the input into sentence blocks on
// blank lines, Tag checks that tags are present, and Parse builds the
// per-word child lists from the head column. It exists so the layer can
// run end to end on the standard treebank interchange format without a
// trained native model.
package conllu

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/revelaction/udpipe-go/engine"
)

// CoNLL-U column layout: ID FORM LEMMA UPOS XPOS FEATS HEAD DEPREL DEPS MISC.
const numFields = 10

// Options is the model payload. Corrupt or non-JSON model data is a load
// failure; an empty payload selects the defaults.
type Options struct {
	// Strict rejects malformed lines, missing tags and out-of-range
	// heads instead of skipping over them.
	Strict bool `json:"strict"`
}

// Engine loads CoNLL-U option models.
type Engine struct{}

var _ engine.Engine = (*Engine)(nil)

// New returns a CoNLL-U engine.
func New() *Engine {
	return &Engine{}
}

// Load reads an Options JSON document from r. Empty input yields the
// default options.
func (e *Engine) Load(r io.Reader) (engine.Resource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading model data: %w", err)
	}

	var opts Options
	if s := strings.TrimSpace(string(data)); s != "" {
		if err := json.Unmarshal([]byte(s), &opts); err != nil {
			return nil, fmt.Errorf("invalid model data: %w", err)
		}
	}

	return &resource{opts: opts}, nil
}

type resource struct {
	opts   Options
	closed bool
}

var _ engine.Resource = (*resource)(nil)

func (r *resource) NewTokenizer() (engine.Tokenizer, error) {
	if r.closed {
		return nil, fmt.Errorf("resource is closed")
	}
	return &tokenizer{opts: r.opts}, nil
}

// Tag verifies the annotations the input already carries. In strict mode
// a word without a universal tag fails the sentence.
func (r *resource) Tag(t *engine.Tree) error {
	if r.closed {
		return fmt.Errorf("resource is closed")
	}
	if !r.opts.Strict {
		return nil
	}
	for i := 1; i < len(t.Words); i++ {
		if t.Words[i].UPosTag == "" {
			return fmt.Errorf("word %d %q has no upostag", t.Words[i].ID, t.Words[i].Form)
		}
	}
	return nil
}

// Parse rebuilds the child id lists from the head column. Heads attach
// children by word id, so the tree must be id-addressable: ids equal to
// slice positions and heads inside the sentence. A violation fails the
// sentence in either mode.
func (r *resource) Parse(t *engine.Tree) error {
	if r.closed {
		return fmt.Errorf("resource is closed")
	}
	if err := contiguous(t); err != nil {
		return err
	}
	for i := range t.Words {
		t.Words[i].Children = t.Words[i].Children[:0]
	}
	for i := 1; i < len(t.Words); i++ {
		head := t.Words[i].Head
		if head < 0 || head >= len(t.Words) {
			return fmt.Errorf("word %d has head %d out of range", t.Words[i].ID, head)
		}
		t.Words[head].Children = append(t.Words[head].Children, t.Words[i].ID)
	}
	return nil
}

// contiguous checks that word ids are the range 1..n in order, so a word
// id is also its slice position.
func contiguous(t *engine.Tree) error {
	for i := 1; i < len(t.Words); i++ {
		if t.Words[i].ID != i {
			return fmt.Errorf("word id %d at position %d, sentence not addressable", t.Words[i].ID, i)
		}
	}
	return nil
}

func (r *resource) Close() error {
	r.closed = true
	return nil
}

type tokenizer struct {
	opts Options
	rest string
}

var _ engine.Tokenizer = (*tokenizer)(nil)

func (tk *tokenizer) SetText(text string) {
	tk.rest = text
}

// Next fills t from the next non-empty sentence block.
func (tk *tokenizer) Next(t *engine.Tree) (bool, error) {
	for {
		block, rest, ok := nextBlock(tk.rest)
		tk.rest = rest
		if !ok {
			return false, nil
		}

		t.Reset()
		t.AddRoot()

		for _, line := range block {
			if strings.HasPrefix(line, "#") {
				t.Comments = append(t.Comments, line)
				continue
			}
			if err := tk.addLine(t, line); err != nil {
				if tk.opts.Strict {
					return false, err
				}
				continue
			}
		}

		// comment-only or fully skipped block: keep scanning
		if len(t.Words) <= 1 {
			continue
		}

		// A skipped line leaves an id gap. The surviving words would
		// sit at positions that no longer match their ids and heads
		// would point at the wrong words, so the whole sentence is
		// dropped rather than surfaced broken.
		if err := contiguous(t); err != nil {
			if tk.opts.Strict {
				return false, err
			}
			continue
		}

		return true, nil
	}
}

func (tk *tokenizer) addLine(t *engine.Tree, line string) error {
	fields := strings.Split(line, "\t")
	if len(fields) != numFields {
		return fmt.Errorf("line has %d fields, want %d: %q", len(fields), numFields, line)
	}

	id := fields[0]

	// empty nodes of the enhanced representation (n.m ids)
	if strings.Contains(id, ".") {
		return nil
	}

	// multiword token range (n-m ids)
	if first, last, ok := strings.Cut(id, "-"); ok {
		idFirst, err1 := strconv.Atoi(first)
		idLast, err2 := strconv.Atoi(last)
		if err1 != nil || err2 != nil {
			return fmt.Errorf("invalid token range %q", id)
		}
		t.MultiwordTokens = append(t.MultiwordTokens, engine.TreeToken{
			Form:    fields[1],
			Misc:    empty(fields[9]),
			IDFirst: idFirst,
			IDLast:  idLast,
		})
		return nil
	}

	wordId, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("invalid word id %q", id)
	}

	head := 0
	if fields[6] != "_" {
		head, err = strconv.Atoi(fields[6])
		if err != nil {
			return fmt.Errorf("invalid head %q for word %d", fields[6], wordId)
		}
	}

	t.Words = append(t.Words, engine.TreeWord{
		Form:    fields[1],
		Lemma:   empty(fields[2]),
		UPosTag: empty(fields[3]),
		XPosTag: empty(fields[4]),
		Feats:   empty(fields[5]),
		DepRel:  empty(fields[7]),
		Deps:    empty(fields[8]),
		Misc:    empty(fields[9]),
		ID:      wordId,
		Head:    head,
	})
	return nil
}

// nextBlock returns the lines of the next block separated by blank lines,
// the remaining text, and whether a block was found.
func nextBlock(text string) ([]string, string, bool) {
	var lines []string
	for len(text) > 0 {
		line, rest, _ := strings.Cut(text, "\n")
		text = rest
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			if len(lines) > 0 {
				return lines, text, true
			}
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		return lines, "", true
	}
	return nil, "", false
}

// empty maps the CoNLL-U underscore placeholder to the empty string.
func empty(field string) string {
	if field == "_" {
		return ""
	}
	return field
}
