// Package download fetches pre-trained annotation models from the
// LINDAT/CLARIAH-CZ repository (Universal Dependencies 2.5).
package download

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// BaseURL is the repository location of the 2.5 model release.
const BaseURL = "https://lindat.mff.cuni.cz/repository/xmlui/bitstream/handle/11234/1-3131"

// Available lists the language identifiers of the pre-trained 2.5
// models hosted at BaseURL.
var Available = []string{
	"afrikaans-afribooms",
	"ancient_greek-perseus",
	"ancient_greek-proiel",
	"arabic-padt",
	"armenian-armtdp",
	"basque-bdt",
	"belarusian-hse",
	"bulgarian-btb",
	"buryat-bdt",
	"catalan-ancora",
	"chinese-gsd",
	"chinese-gsdsimp",
	"classical_chinese-kyoto",
	"coptic-scriptorium",
	"croatian-set",
	"czech-cac",
	"czech-cltt",
	"czech-fictree",
	"czech-pdt",
	"danish-ddt",
	"dutch-alpino",
	"dutch-lassysmall",
	"english-ewt",
	"english-gum",
	"english-lines",
	"english-partut",
	"estonian-edt",
	"estonian-ewt",
	"finnish-ftb",
	"finnish-tdt",
	"french-gsd",
	"french-partut",
	"french-sequoia",
	"french-spoken",
	"galician-ctg",
	"galician-treegal",
	"german-gsd",
	"german-hdt",
	"gothic-proiel",
	"greek-gdt",
	"hebrew-htb",
	"hindi-hdtb",
	"hungarian-szeged",
	"indonesian-gsd",
	"irish-idt",
	"italian-isdt",
	"italian-partut",
	"italian-postwita",
	"italian-twittiro",
	"italian-vit",
	"japanese-gsd",
	"kazakh-ktb",
	"korean-gsd",
	"korean-kaist",
	"kurmanji-mg",
	"latin-ittb",
	"latin-perseus",
	"latin-proiel",
	"latvian-lvtb",
	"lithuanian-alksnis",
	"lithuanian-hse",
	"maltese-mudt",
	"marathi-ufal",
	"north_sami-giella",
	"norwegian-bokmaal",
	"norwegian-nynorsk",
	"norwegian-nynorsklia",
	"old_church_slavonic-proiel",
	"old_french-srcmf",
	"old_russian-torot",
	"persian-seraji",
	"polish-lfg",
	"polish-pdb",
	"polish-sz",
	"portuguese-bosque",
	"portuguese-br",
	"portuguese-gsd",
	"romanian-nonstandard",
	"romanian-rrt",
	"russian-gsd",
	"russian-syntagrus",
	"russian-taiga",
	"sanskrit-ufal",
	"scottish_gaelic-arcosg",
	"serbian-set",
	"slovak-snk",
	"slovenian-ssj",
	"slovenian-sst",
	"spanish-ancora",
	"spanish-gsd",
	"swedish-lines",
	"swedish-talbanken",
	"tamil-ttb",
	"telugu-mtg",
	"turkish-imst",
	"ukrainian-iu",
	"upper_sorbian-ufal",
	"urdu-udtb",
	"uyghur-udt",
	"vietnamese-vtb",
	"wolof-wtb",
}

// Filename returns the release filename for a language identifier,
// e.g. "english-ewt" gives "english-ewt-ud-2.5-191206.udpipe".
func Filename(language string) string {
	return language + "-ud-2.5-191206.udpipe"
}

// IsAvailable reports whether language names a hosted model.
func IsAvailable(language string) bool {
	for _, l := range Available {
		if l == language {
			return true
		}
	}
	return false
}

// Fetch downloads the model for language into destDir and returns the
// path of the written file. The progress callback, if not nil, is
// called with the bytes written so far and the total size reported by
// the server (-1 when unknown).
func Fetch(language, destDir string, progress func(done, total int64)) (string, error) {
	if !IsAvailable(language) {
		return "", fmt.Errorf("unknown language %q, use one of: %s, ...", language, strings.Join(Available[:5], ", "))
	}

	filename := Filename(language)
	destPath := filepath.Join(destDir, filename)
	url := BaseURL + "/" + filename

	if err := FetchURL(url, destPath, progress); err != nil {
		return "", err
	}
	return destPath, nil
}

// FetchURL downloads a model from an arbitrary URL to path, creating
// parent directories as needed.
func FetchURL(url, path string, progress func(done, total int64)) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: %s", url, resp.Status)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var body io.Reader = resp.Body
	if progress != nil {
		body = &countingReader{r: resp.Body, total: resp.ContentLength, progress: progress}
	}

	n, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if n == 0 {
		os.Remove(path)
		return fmt.Errorf("downloaded file is empty: %s", url)
	}

	return nil
}

type countingReader struct {
	r        io.Reader
	done     int64
	total    int64
	progress func(done, total int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.done += int64(n)
		c.progress(c.done, c.total)
	}
	return n, err
}
