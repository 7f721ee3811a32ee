package main

import (
	"errors"
	"fmt"

	"github.com/revelaction/udpipe-go/render"
)

func sentenceCommand(opts SentenceOptions, docId, sentId int, offset *int, ui UI) error {
	pool := &Pool{}
	defer pool.Close()

	repo, err := NewDocRepository(pool, opts.DocPath)
	if err != nil {
		return err
	}

	doc, err := repo.Read(docId)
	if err != nil {
		return err
	}

	if sentId < 0 || sentId >= len(doc.Sentences) {
		return fmt.Errorf("sentenceId out of range: %d (doc has %d sentences)", sentId, len(doc.Sentences))
	}

	s := doc.Sentences[sentId]
	fmt.Fprintf(ui.Out, "✍  %d-%d %s\n\n", docId, sentId, render.Text(s))

	offVal := 0
	if offset != nil {
		offVal = *offset
	}

	// check len
	if offVal > len(s.Words) {
		return errors.New("offset is greater than length of sentence. Usage <docId> <sentenceId> [offset]")
	}

	tail := s
	tail.Words = s.Words[offVal:]
	render.Table(ui.Out, tail)
	return nil
}
