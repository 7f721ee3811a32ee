// Package render turns annotation records into output: reconstructed
// plain text, fixed-width word tables, CoNLL-U blocks and JSON.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/revelaction/udpipe-go/sentence"
)

const Defaultformat = "text"

func SupportedFormats() []string {
	return []string{"text", "table", "conllu", "json"}
}

// Text reconstructs the surface text of s.
//
// Words covered by a multiword token render as the token's surface form
// once; spacing follows the SpaceAfter annotations.
func Text(s sentence.Sentence) string {
	var b strings.Builder

	mwtIdx := 0
	i := 0
	for i < len(s.Words) {
		w := s.Words[i]

		if mwtIdx < len(s.MultiwordTokens) && s.MultiwordTokens[mwtIdx].IdFirst == w.Id {
			mwt := s.MultiwordTokens[mwtIdx]
			mwtIdx++

			b.WriteString(mwt.Form)

			// skip the words the token spans
			for i < len(s.Words) && s.Words[i].Id <= mwt.IdLast {
				i++
			}

			if i < len(s.Words) && !strings.Contains(mwt.Misc, "SpaceAfter=No") {
				b.WriteByte(' ')
			}
			continue
		}

		b.WriteString(w.Form)
		i++
		if i < len(s.Words) && w.SpaceAfter() {
			b.WriteByte(' ')
		}
	}

	return b.String()
}

// Table writes one fixed-width line per word.
func Table(w io.Writer, s sentence.Sentence) {
	for _, word := range s.Words {
		fmt.Fprintf(w, "%20q %15q %8s %6d %6d %8s %s\n",
			word.Form, word.Lemma, word.UPosTag, word.Id, word.Head, word.DepRel, word.Feats)
	}
}
