package main

import (
	"github.com/revelaction/udpipe-go/repl"
)

func replCommand(opts ReplOptions, ui UI) error {
	pool := &Pool{}
	defer pool.Close()

	repo, err := NewDocRepository(pool, opts.DocPath)
	if err != nil {
		return err
	}

	h := repl.NewHandler(repo, ui.Out)
	h.Format = opts.Format
	h.Limit = opts.Limit
	return h.Run()
}
