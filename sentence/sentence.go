// Package sentence holds the owned annotation records produced by a parse
// and the flattening of the engine-side tree into them.
package sentence

import (
	"strings"

	"github.com/revelaction/udpipe-go/engine"
)

// Sentence is one fully materialized annotation result. It owns all of its
// strings and arrays, has no reference back to the session or model that
// produced it, and is safe to retain, share between readers, or send to
// another goroutine after the session is gone.
type Sentence struct {
	Words           []Word           `json:"words"`
	MultiwordTokens []MultiwordToken `json:"multiword_tokens,omitempty"`

	// Comments are the raw annotation lines preceding the sentence,
	// order-preserving and opaque to this layer.
	Comments []string `json:"comments,omitempty"`
}

// Word is one annotated token inside a Sentence.
type Word struct {
	// The surface form (actual text).
	Form string `json:"form"`

	// The lemma (dictionary form).
	Lemma string `json:"lemma"`

	// Universal POS tag (NOUN, VERB, ADJ, ...).
	UPosTag string `json:"upostag"`

	// Language-specific POS tag.
	XPosTag string `json:"xpostag,omitempty"`

	// Morphological features, e.g. "VerbForm=Inf|Mood=Imp".
	Feats string `json:"feats,omitempty"`

	// Dependency relation to the head (root, nsubj, obj, ...).
	DepRel string `json:"deprel"`

	// Enhanced dependencies.
	Deps string `json:"deps,omitempty"`

	// Miscellaneous annotations, e.g. "SpaceAfter=No".
	Misc string `json:"misc,omitempty"`

	// 1-based index of this word within its sentence.
	Id int `json:"id"`

	// Index of the head word; 0 means this word is the sentence root.
	Head int `json:"head"`

	// Children are the ids of the words whose Head is this word's Id.
	//
	// Within a freshly flattened Sentence all Children slices share one
	// flat backing array; the slice header is the (offset, count) pair
	// into it. Records decoded from storage get one slice per word
	// instead, which changes nothing for readers.
	Children []int `json:"children,omitempty"`
}

// MultiwordToken is a surface unit spanning the inclusive word id range
// [IdFirst, IdLast], e.g. Spanish "envolverse" -> "envolver" + "se".
type MultiwordToken struct {
	Form    string `json:"form"`
	Misc    string `json:"misc,omitempty"`
	IdFirst int    `json:"id_first"`
	IdLast  int    `json:"id_last"`
}

// Doc is a titled, labeled collection of sentences, the unit the storage
// layer persists.
type Doc struct {
	Id        int        `json:"id"`
	Title     string     `json:"title"`
	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Flatten converts the engine-side tree into an owned Sentence.
//
// The virtual root at index 0 is excluded. Word order is preserved, all
// strings are copied, and the per-word child lists are packed into one
// shared flat array addressed by sub-slices. After Flatten returns, the
// tree may be reset or reused by the engine with no effect on the record.
func Flatten(t *engine.Tree) Sentence {
	n := 0
	if len(t.Words) > 0 {
		n = len(t.Words) - 1
	}

	total := 0
	for i := 1; i < len(t.Words); i++ {
		total += len(t.Words[i].Children)
	}

	s := Sentence{Words: make([]Word, 0, n)}
	flat := make([]int, 0, total)

	for i := 1; i < len(t.Words); i++ {
		tw := &t.Words[i]

		offset := len(flat)
		flat = append(flat, tw.Children...)

		w := Word{
			Form:    tw.Form,
			Lemma:   tw.Lemma,
			UPosTag: tw.UPosTag,
			XPosTag: tw.XPosTag,
			Feats:   tw.Feats,
			DepRel:  tw.DepRel,
			Deps:    tw.Deps,
			Misc:    tw.Misc,
			Id:      tw.ID,
			Head:    tw.Head,
		}
		if count := len(tw.Children); count > 0 {
			w.Children = flat[offset : offset+count : offset+count]
		}
		s.Words = append(s.Words, w)
	}

	if len(t.MultiwordTokens) > 0 {
		s.MultiwordTokens = make([]MultiwordToken, 0, len(t.MultiwordTokens))
		for _, mwt := range t.MultiwordTokens {
			s.MultiwordTokens = append(s.MultiwordTokens, MultiwordToken{
				Form:    mwt.Form,
				Misc:    mwt.Misc,
				IdFirst: mwt.IDFirst,
				IdLast:  mwt.IDLast,
			})
		}
	}

	if len(t.Comments) > 0 {
		s.Comments = append([]string(nil), t.Comments...)
	}

	return s
}

// Feature returns the value of the morphological feature key, or "" and
// false when the feature is absent.
func (w *Word) Feature(key string) (string, bool) {
	for _, f := range strings.Split(w.Feats, "|") {
		rest, ok := strings.CutPrefix(f, key)
		if !ok {
			continue
		}
		if value, ok := strings.CutPrefix(rest, "="); ok {
			return value, true
		}
	}
	return "", false
}

// HasFeature reports whether the word carries the feature key with value.
func (w *Word) HasFeature(key, value string) bool {
	v, ok := w.Feature(key)
	return ok && v == value
}

// IsVerb reports whether the word is a verb (VERB or AUX).
func (w *Word) IsVerb() bool {
	return w.UPosTag == "VERB" || w.UPosTag == "AUX"
}

// IsNoun reports whether the word is a noun (NOUN or PROPN).
func (w *Word) IsNoun() bool {
	return w.UPosTag == "NOUN" || w.UPosTag == "PROPN"
}

// IsAdjective reports whether the word is an adjective.
func (w *Word) IsAdjective() bool {
	return w.UPosTag == "ADJ"
}

// IsPunct reports whether the word is punctuation.
func (w *Word) IsPunct() bool {
	return w.UPosTag == "PUNCT"
}

// IsRoot reports whether the word is the root of its sentence.
func (w *Word) IsRoot() bool {
	return w.DepRel == "root"
}

// SpaceAfter reports whether a space follows the word in the original
// text. CoNLL-U only records "SpaceAfter=No"; absence means true.
func (w *Word) SpaceAfter() bool {
	return !strings.Contains(w.Misc, "SpaceAfter=No")
}
