package main

import (
	"fmt"
	"path/filepath"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/udpipe-go/download"
)

func downloadCommand(opts DownloadOptions, language string, ui UI) error {
	uiprogress.Start()
	bar := uiprogress.AddBar(100)
	bar.AppendCompleted()
	bar.PrependElapsed()

	progress := func(done, total int64) {
		if total <= 0 {
			return
		}
		pct := int(done * 100 / total)
		if pct > 100 {
			pct = 100
		}
		_ = bar.Set(pct)
	}

	if opts.URL != "" {
		path := filepath.Join(opts.Dir, filepath.Base(opts.URL))
		if err := download.FetchURL(opts.URL, path, progress); err != nil {
			uiprogress.Stop()
			return err
		}
		uiprogress.Stop()
		fmt.Fprintf(ui.Out, "Model saved to %s\n", path)
		return nil
	}

	path, err := download.Fetch(language, opts.Dir, progress)
	if err != nil {
		uiprogress.Stop()
		return err
	}
	uiprogress.Stop()

	fmt.Fprintf(ui.Out, "Model saved to %s\n", path)
	return nil
}
