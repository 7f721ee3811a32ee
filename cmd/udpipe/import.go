package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/udpipe-go/parser"
	"github.com/revelaction/udpipe-go/sentence"
)

func importCommand(opts ImportOptions, inputs []string, ui UI) error {
	pool := &Pool{}
	defer pool.Close()

	repo, err := NewDocRepository(pool, opts.DocPath)
	if err != nil {
		return err
	}

	m, err := loadModel("", opts.Strict)
	if err != nil {
		return err
	}
	defer m.Close()

	uiprogress.Start()
	bar := uiprogress.AddBar(len(inputs))
	bar.AppendCompleted()
	bar.PrependElapsed()

	count := 0
	for _, input := range inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			uiprogress.Stop()
			return err
		}

		sentences, err := parser.Collect(m, string(data))
		if err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to annotate %s: %w", input, err)
		}

		title := opts.Title
		if title == "" {
			title = docTitle(input)
		}

		doc := sentence.Doc{
			Title:     title,
			Labels:    opts.Labels,
			Sentences: sentences,
		}

		if err := repo.Write(doc); err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to write doc %s: %w", title, err)
		}
		count++
		bar.Incr()
	}
	uiprogress.Stop()

	fmt.Fprintf(ui.Out, "Successfully imported %d docs to %s\n", count, opts.DocPath)
	return nil
}

// docTitle derives a document title from the input file name.
func docTitle(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
