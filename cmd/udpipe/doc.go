package main

import (
	"fmt"
	"strconv"

	"github.com/revelaction/udpipe-go/render"
	"github.com/revelaction/udpipe-go/sentence"
	"github.com/revelaction/udpipe-go/storage"
)

func docCommand(opts DocOptions, arg string, ui UI) error {
	pool := &Pool{}
	defer pool.Close()

	repo, err := NewDocRepository(pool, opts.DocPath)
	if err != nil {
		return err
	}

	if arg == "" {
		return listDocs(repo, ui)
	}

	id, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid docId: %v", err)
	}

	doc, err := repo.Read(id)
	if err != nil {
		return err
	}

	return renderDoc(doc, opts, ui)
}

func listDocs(repo storage.DocReader, ui UI) error {
	docs, err := repo.List("")
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Fprintf(ui.Out, "📖 %d %s\n", doc.Id, doc.Title)
	}
	return nil
}

func renderDoc(doc sentence.Doc, opts DocOptions, ui UI) error {
	start := opts.Start
	if start < 0 {
		start = 0
	}
	if start >= len(doc.Sentences) {
		return nil
	}

	sentences := doc.Sentences[start:]
	if opts.Count >= 0 && opts.Count < len(sentences) {
		sentences = sentences[:opts.Count]
	}

	switch opts.Format {
	case "json":
		jr := render.JSONRenderer{W: ui.Out}
		return jr.Sentences(sentences)
	case "conllu":
		cw := render.ConlluWriter{W: ui.Out}
		for _, s := range sentences {
			if err := cw.Sentence(s); err != nil {
				return err
			}
		}
	case "table":
		for i, s := range sentences {
			fmt.Fprintf(ui.Out, "✍  %d\n", start+i)
			render.Table(ui.Out, s)
			fmt.Fprintln(ui.Out)
		}
	default:
		for i, s := range sentences {
			fmt.Fprintf(ui.Out, "✍  %d %s\n", start+i, render.Text(s))
		}
	}

	return nil
}
