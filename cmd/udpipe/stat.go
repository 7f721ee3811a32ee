package main

import (
	"fmt"
	"sort"

	"github.com/revelaction/udpipe-go/stat"
)

func statCommand(opts StatOptions, docId *int, ui UI) error {
	pool := &Pool{}
	defer pool.Close()

	repo, err := NewDocRepository(pool, opts.DocPath)
	if err != nil {
		return err
	}

	hdl := stat.NewHandler()

	if docId != nil {
		doc, err := repo.Read(*docId)
		if err != nil {
			return err
		}
		hdl.Aggregate(doc)
	} else {
		docs, err := repo.List("")
		if err != nil {
			return err
		}
		for _, meta := range docs {
			doc, err := repo.Read(meta.Id)
			if err != nil {
				return err
			}
			hdl.Aggregate(doc)
		}
	}

	stats := hdl.Get()
	fmt.Fprintf(ui.Out, "Num sentences %d, num words %d, words per sentence %d\n", stats.NumSentences, stats.NumWords, stats.WordsPerSentenceMean)

	tags := make([]string, 0, len(stats.UPosDis))
	for tag := range stats.UPosDis {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Fprintf(ui.Out, "%10s %6d\n", tag, stats.UPosDis[tag])
	}

	return nil
}
