// Package repl provides an interactive prompt for querying stored
// documents by lemma.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/udpipe-go/render"
	"github.com/revelaction/udpipe-go/sentence"
	"github.com/revelaction/udpipe-go/storage"
)

// labelPrefix marks a prompt token as a document label filter.
const labelPrefix = "#"

// batchSize is the number of candidates fetched per storage query.
const batchSize = 500

type Handler struct {
	DocRepo storage.DocReader
	Out     io.Writer

	// Format is the render format for hits, toggled with Ctrl+F.
	Format string

	// Limit caps the hits printed per query.
	Limit int
}

func NewHandler(dr storage.DocReader, out io.Writer) *Handler {
	return &Handler{
		DocRepo: dr,
		Out:     out,
		Format:  render.Defaultformat,
		Limit:   100,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Out, "🔑 Ctrl+F: next Format, 🔧 quit")

	labels, err := h.DocRepo.Labels("")
	if err != nil {
		return err
	}

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔎 ", h.completer(labels),
			prompt.OptionTitle("udpipe search"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.nextFormat()
					fmt.Fprintln(h.Out, "Format set to: "+h.Format)
				}}),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)

		lemmas, filters := parse(in)
		if len(lemmas) == 0 {
			continue
		}

		if err := h.query(lemmas, filters); err != nil {
			fmt.Fprintf(h.Out, "Error fetching candidates: %v\n", err)
		}
	}
}

// query streams matching sentences from storage and renders them in
// the current format.
func (h *Handler) query(lemmas, labels []string) error {
	cursor := storage.Cursor(0)
	fetched := 0

	for {
		newCursor, err := h.DocRepo.FindCandidates(lemmas, labels, cursor, batchSize, func(hit storage.SentenceHit) error {
			fetched++
			return h.renderHit(hit)
		})
		if err != nil {
			return err
		}
		if cursor == newCursor {
			break // No more progress
		}
		if fetched >= h.Limit {
			break
		}
		cursor = newCursor
	}

	fmt.Fprintf(h.Out, "%d sentences\n", fetched)
	return nil
}

func (h *Handler) renderHit(hit storage.SentenceHit) error {
	switch h.Format {
	case "table":
		fmt.Fprintf(h.Out, "📄 %s\n", hit.DocTitle)
		render.Table(h.Out, hit.Sentence)
	case "conllu":
		cw := render.ConlluWriter{W: h.Out}
		return cw.Sentence(hit.Sentence)
	case "json":
		jr := render.JSONRenderer{W: h.Out}
		return jr.Sentences([]sentence.Sentence{hit.Sentence})
	default:
		fmt.Fprintf(h.Out, "📄 %-20s %s\n", hit.DocTitle, render.Text(hit.Sentence))
	}
	return nil
}

func (h *Handler) nextFormat() {
	formats := render.SupportedFormats()
	for i, f := range formats {
		if f == h.Format {
			h.Format = formats[(i+1)%len(formats)]
			return
		}
	}
	h.Format = render.Defaultformat
}

// parse splits the prompt line into lemmas and label filters. Tokens
// prefixed with '#' filter by document label.
func parse(in string) (lemmas, labels []string) {
	for _, token := range strings.Fields(in) {
		if strings.HasPrefix(token, labelPrefix) {
			label := strings.TrimPrefix(token, labelPrefix)
			if label != "" {
				labels = append(labels, label)
			}
			continue
		}
		lemmas = append(lemmas, token)
	}
	return lemmas, labels
}

func (h *Handler) completer(labels []string) func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		word := in.GetWordBeforeCursor()

		if word == "" {
			return s
		}

		if !strings.HasPrefix(word, labelPrefix) {
			return s
		}

		rest := strings.TrimPrefix(word, labelPrefix)
		for _, l := range labels {
			if strings.HasPrefix(l, rest) {
				s = append(s, prompt.Suggest{Text: labelPrefix + l, Description: "🔖 label"})
			}
		}

		return s
	}
}
