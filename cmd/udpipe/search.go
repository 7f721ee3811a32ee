package main

import (
	"fmt"

	"github.com/revelaction/udpipe-go/render"
	"github.com/revelaction/udpipe-go/sentence"
	"github.com/revelaction/udpipe-go/storage"
)

// batchSize is the number of candidates fetched per storage query.
const batchSize = 500

func searchCommand(opts SearchOptions, lemmas []string, ui UI) error {
	pool := &Pool{}
	defer pool.Close()

	repo, err := NewDocRepository(pool, opts.DocPath)
	if err != nil {
		return err
	}

	var collected []sentence.Sentence

	fetched := 0
	cursor := storage.Cursor(0)
	for {
		newCursor, err := repo.FindCandidates(lemmas, opts.Labels, cursor, batchSize, func(hit storage.SentenceHit) error {
			fetched++

			switch opts.Format {
			case "json":
				collected = append(collected, hit.Sentence)
			case "table":
				fmt.Fprintf(ui.Out, "📄 %s\n", hit.DocTitle)
				render.Table(ui.Out, hit.Sentence)
				fmt.Fprintln(ui.Out)
			case "conllu":
				cw := render.ConlluWriter{W: ui.Out}
				return cw.Sentence(hit.Sentence)
			default:
				fmt.Fprintf(ui.Out, "📄 %-20s %s\n", hit.DocTitle, render.Text(hit.Sentence))
			}
			return nil
		})
		if err != nil {
			return err
		}
		if cursor == newCursor {
			break // No more progress
		}
		if fetched >= opts.Limit {
			break
		}
		cursor = newCursor
	}

	if opts.Format == "json" {
		jr := render.JSONRenderer{W: ui.Out}
		return jr.Sentences(collected)
	}

	fmt.Fprintf(ui.Out, "%d sentences\n", fetched)
	return nil
}
