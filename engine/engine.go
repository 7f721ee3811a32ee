// Package engine defines the boundary contract between the udpipe-go
// safety layer and an annotation engine. The engine performs the actual
// tokenization, tagging, lemmatization and dependency parsing; this
// package only names the seam.
//
// Implementations live outside the core layer. The repository ships two:
// engine/conllu, which reads pre-annotated CoNLL-U input, and
// engine/enginetest, a scripted engine for tests.
package engine

import "io"

// Engine constructs model resources from serialized model data.
//
// Load reads the model through r without retaining it. Callers that hold
// the model in memory pass a bytes.Reader over their buffer; no additional
// copy of the model data is made before the engine sees it.
type Engine interface {
	Load(r io.Reader) (Resource, error)
}

// Resource is one loaded model. It owns engine-side state and must be
// closed exactly once by its owner.
//
// Tag and Parse mutate engine-internal caches reachable through the
// resource; a Resource must not be used from two goroutines at once
// without external locking. Moving it to another goroutine and using it
// there exclusively is fine.
type Resource interface {
	// NewTokenizer returns a fresh tokenizer bound to this resource.
	NewTokenizer() (Tokenizer, error)

	// Tag annotates the words of t with lemmas and tags, in place.
	Tag(t *Tree) error

	// Parse attaches each word of t to its syntactic head, filling Head
	// and the per-word Children lists, in place.
	Parse(t *Tree) error

	// Close releases the engine-side state. The Resource is unusable
	// afterwards.
	Close() error
}

// Tokenizer splits input text into sentences, one Tree per call.
type Tokenizer interface {
	// SetText sets the text to tokenize. The tokenizer keeps its own
	// reference; Go string immutability guarantees the text cannot be
	// overwritten underneath it.
	SetText(text string)

	// Next fills t with the next sentence. It returns false with a nil
	// error at end of text, and false with a non-nil error when the
	// tokenizer cannot continue.
	Next(t *Tree) (bool, error)
}

// Tree is the engine-side annotation tree for a single sentence.
//
// Words[0] is the engine's virtual root; real words start at index 1 and
// carry 1-based ids. Children holds the pointer-linked child id lists the
// engine maintains per word. The same Tree is reused across pulls by the
// parser session, so peak memory stays bounded to one sentence.
type Tree struct {
	Words           []TreeWord
	MultiwordTokens []TreeToken
	Comments        []string
}

// TreeWord is one word inside a Tree, virtual root included.
type TreeWord struct {
	Form     string
	Lemma    string
	UPosTag  string
	XPosTag  string
	Feats    string
	DepRel   string
	Deps     string
	Misc     string
	ID       int
	Head     int
	Children []int
}

// TreeToken is a multiword token annotation spanning the inclusive word
// id range [IDFirst, IDLast].
type TreeToken struct {
	Form    string
	Misc    string
	IDFirst int
	IDLast  int
}

// Reset clears t for reuse, keeping allocated capacity.
func (t *Tree) Reset() {
	t.Words = t.Words[:0]
	t.MultiwordTokens = t.MultiwordTokens[:0]
	t.Comments = t.Comments[:0]
}

// AddRoot appends the virtual root word. Tokenizers call it before
// appending real words so that word ids line up with slice indexes.
func (t *Tree) AddRoot() {
	t.Words = append(t.Words, TreeWord{ID: 0, Form: "<root>"})
}
