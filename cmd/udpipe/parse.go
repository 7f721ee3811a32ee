package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/revelaction/udpipe-go/engine/conllu"
	"github.com/revelaction/udpipe-go/model"
	"github.com/revelaction/udpipe-go/parser"
	"github.com/revelaction/udpipe-go/render"
	"github.com/revelaction/udpipe-go/sentence"
)

func parseCommand(opts ParseOptions, input string, ui UI) error {
	text, err := readInput(input)
	if err != nil {
		return err
	}

	m, err := loadModel(opts.Model, opts.Strict)
	if err != nil {
		return err
	}
	defer m.Close()

	p, err := parser.New(m, text)
	if err != nil {
		return err
	}
	defer p.Close()

	// json renders a single array, so it collects before writing
	var collected []sentence.Sentence

	count := 0
	for {
		if opts.Count >= 0 && count >= opts.Count {
			break
		}

		s, err := p.Next()
		if err != nil {
			return err
		}
		if s == nil {
			break
		}
		count++

		switch opts.Format {
		case "json":
			collected = append(collected, *s)
		case "table":
			render.Table(ui.Out, *s)
			fmt.Fprintln(ui.Out)
		case "conllu":
			cw := render.ConlluWriter{W: ui.Out}
			if err := cw.Sentence(*s); err != nil {
				return err
			}
		default:
			fmt.Fprintln(ui.Out, render.Text(*s))
		}
	}

	if opts.Format == "json" {
		jr := render.JSONRenderer{W: ui.Out}
		return jr.Sentences(collected)
	}

	return nil
}

// readInput returns the contents of path, or stdin when path is empty.
func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// loadModel loads the model file when a path is given, or builds an
// in-memory model from the strict flag.
func loadModel(path string, strict bool) (*model.Model, error) {
	eng := conllu.New()

	if path != "" {
		return model.Load(eng, path)
	}

	data, err := json.Marshal(conllu.Options{Strict: strict})
	if err != nil {
		return nil, err
	}
	return model.LoadFromBytes(eng, data)
}
