package render

import (
	"fmt"
	"io"

	"github.com/revelaction/udpipe-go/sentence"
)

// ConlluWriter writes sentences back out as CoNLL-U blocks.
type ConlluWriter struct {
	W io.Writer
}

// NewConlluWriter creates a ConlluWriter writing to w.
func NewConlluWriter(w io.Writer) *ConlluWriter {
	return &ConlluWriter{W: w}
}

// Sentence writes one sentence block followed by the separating blank
// line: comments first, then one tab-separated line per word, with
// multiword token ranges interleaved before their first word.
func (cw *ConlluWriter) Sentence(s sentence.Sentence) error {
	for _, c := range s.Comments {
		if _, err := fmt.Fprintln(cw.W, c); err != nil {
			return err
		}
	}

	mwtIdx := 0
	for _, w := range s.Words {
		if mwtIdx < len(s.MultiwordTokens) && s.MultiwordTokens[mwtIdx].IdFirst == w.Id {
			mwt := s.MultiwordTokens[mwtIdx]
			mwtIdx++
			_, err := fmt.Fprintf(cw.W, "%d-%d\t%s\t_\t_\t_\t_\t_\t_\t_\t%s\n",
				mwt.IdFirst, mwt.IdLast, mwt.Form, underscore(mwt.Misc))
			if err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(cw.W, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			w.Id, w.Form,
			underscore(w.Lemma), underscore(w.UPosTag), underscore(w.XPosTag),
			underscore(w.Feats), w.Head, underscore(w.DepRel), underscore(w.Deps),
			underscore(w.Misc))
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(cw.W)
	return err
}

// Doc writes every sentence of d.
func (cw *ConlluWriter) Doc(d sentence.Doc) error {
	for _, s := range d.Sentences {
		if err := cw.Sentence(s); err != nil {
			return err
		}
	}
	return nil
}

// underscore maps the empty string to the CoNLL-U placeholder.
func underscore(field string) string {
	if field == "" {
		return "_"
	}
	return field
}
