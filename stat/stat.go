// Package stat aggregates corpus statistics over annotated documents.
package stat

import (
	"github.com/revelaction/udpipe-go/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences         int
	NumWords             int
	WordsPerSentenceMean int
	WordsPerSentenceDis  map[int]int

	// UPosDis counts words per universal POS tag.
	UPosDis map[string]int
}

func NewHandler() *Handler {
	return &Handler{
		stats: Stats{
			WordsPerSentenceDis: map[int]int{},
			UPosDis:             map[string]int{},
		},
	}
}

func (h *Handler) Get() Stats {
	return h.stats
}

// Aggregate adds the sentences of doc to the running totals. It can be
// called once per document to aggregate a whole corpus.
func (h *Handler) Aggregate(doc sentence.Doc) {
	h.stats.NumSentences += len(doc.Sentences)

	for _, s := range doc.Sentences {
		h.stats.NumWords += len(s.Words)
		h.stats.WordsPerSentenceDis[len(s.Words)]++

		for _, w := range s.Words {
			h.stats.UPosDis[w.UPosTag]++
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.WordsPerSentenceMean = h.stats.NumWords / h.stats.NumSentences
	}
}
