package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/udpipe-go/sentence"
)

// JSONRenderer writes annotation records as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Sentences serializes a slice of sentences as a JSON array.
func (r *JSONRenderer) Sentences(ss []sentence.Sentence) error {
	if ss == nil {
		ss = []sentence.Sentence{}
	}
	return json.NewEncoder(r.W).Encode(ss)
}

// Doc serializes a whole document.
func (r *JSONRenderer) Doc(d sentence.Doc) error {
	return json.NewEncoder(r.W).Encode(d)
}
