package main

import (
	"fmt"
	"strings"

	"github.com/revelaction/udpipe-go/download"
)

func modelsCommand(match string, ui UI) error {
	for _, language := range download.Available {
		if match != "" && !strings.Contains(language, match) {
			continue
		}
		fmt.Fprintf(ui.Out, "%-30s %s\n", language, download.Filename(language))
	}
	return nil
}
