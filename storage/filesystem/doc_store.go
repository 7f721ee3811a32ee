// Package filesystem stores annotated documents as JSON files in a
// directory, one file per document.
package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/udpipe-go/sentence"
	"github.com/revelaction/udpipe-go/storage"
)

type DocStore struct {
	docDir string

	// In-memory cache, filled by Preload
	docs   []sentence.Doc
	loaded bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store over docDir. Document
// ids are the alphabetical position of the file in the directory.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	var docs []sentence.Doc
	idx := 0
	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}
		docs = append(docs, sentence.Doc{
			Id:    idx,
			Title: file.Name(),
		})
		idx++
	}

	return &DocStore{
		docDir: docDir,
		docs:   docs,
	}, nil
}

// Preload reads every document into memory. The callback is called per
// file with the total count and the current name.
func (h *DocStore) Preload(cb func(total int, name string)) error {
	if h.loaded {
		return nil
	}

	total := len(h.docs)
	for i := range h.docs {
		doc := &h.docs[i]

		if cb != nil {
			cb(total, doc.Title)
		}

		full, err := readDoc(filepath.Join(h.docDir, doc.Title))
		if err != nil {
			return err
		}

		// Title and Id keep the directory-derived values
		doc.Sentences = full.Sentences
		doc.Labels = full.Labels
	}

	h.loaded = true
	return nil
}

func (h *DocStore) ensure() error {
	return h.Preload(nil)
}

func (h *DocStore) List(labelMatch string) ([]sentence.Doc, error) {
	if err := h.ensure(); err != nil {
		return nil, err
	}

	var out []sentence.Doc
	for _, doc := range h.docs {
		if labelMatch != "" && !labelContains(doc.Labels, labelMatch) {
			continue
		}
		out = append(out, sentence.Doc{Id: doc.Id, Title: doc.Title, Labels: doc.Labels})
	}
	return out, nil
}

func (h *DocStore) Read(id int) (sentence.Doc, error) {
	if err := h.ensure(); err != nil {
		return sentence.Doc{}, err
	}
	if id < 0 || id >= len(h.docs) {
		return sentence.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}
	return h.docs[id], nil
}

// FindCandidates scans the in-memory corpus. The cursor is the ordinal
// of the last visited sentence across all documents.
func (h *DocStore) FindCandidates(lemmas []string, labels []string, after storage.Cursor, limit int, onHit func(storage.SentenceHit) error) (storage.Cursor, error) {
	if len(lemmas) == 0 {
		return after, nil
	}
	if err := h.ensure(); err != nil {
		return after, err
	}

	cursor := after
	emitted := 0

	var ordinal int64
	for _, doc := range h.docs {
		docMatches := labelsMatch(doc.Labels, labels)

		for _, s := range doc.Sentences {
			ordinal++
			if storage.Cursor(ordinal) <= after {
				continue
			}
			if limit > 0 && emitted >= limit {
				return cursor, nil
			}
			cursor = storage.Cursor(ordinal)

			if !docMatches || !hasLemmas(s, lemmas) {
				continue
			}

			hit := storage.SentenceHit{
				RowID:    ordinal,
				DocId:    doc.Id,
				DocTitle: doc.Title,
				Sentence: s,
			}
			if err := onHit(hit); err != nil {
				return cursor, err
			}
			emitted++
		}
	}

	return cursor, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	if err := h.ensure(); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for _, doc := range h.docs {
		for _, l := range doc.Labels {
			if pattern != "" && !strings.Contains(l, pattern) {
				continue
			}
			seen[l] = true
		}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels, nil
}

// Write persists doc as <Title>.json in the store directory. The cache
// stays sorted by file name and ids are renumbered, so ids always equal
// the alphabetical position a reopened store would assign.
func (h *DocStore) Write(doc sentence.Doc) error {
	if doc.Title == "" {
		return fmt.Errorf("doc has no title")
	}

	name := doc.Title
	if filepath.Ext(name) != ".json" {
		name += ".json"
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(h.docDir, name), data, 0644); err != nil {
		return err
	}

	doc.Title = name

	replaced := false
	for i := range h.docs {
		if h.docs[i].Title == name {
			h.docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		h.docs = append(h.docs, doc)
		sort.Slice(h.docs, func(i, j int) bool {
			return h.docs[i].Title < h.docs[j].Title
		})
	}
	for i := range h.docs {
		h.docs[i].Id = i
	}

	return nil
}

// readDoc reads a Doc JSON from the given path and unmarshals it.
func readDoc(path string) (sentence.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sentence.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sentence.Doc
	if err := json.Unmarshal(f, &doc); err != nil {
		return sentence.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}

func hasLemmas(s sentence.Sentence, lemmas []string) bool {
	for _, lemma := range lemmas {
		found := false
		for _, w := range s.Words {
			if w.Lemma == lemma {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func labelsMatch(docLabels, want []string) bool {
	for _, l := range want {
		if !labelContains(docLabels, l) {
			return false
		}
	}
	return true
}

func labelContains(labels []string, match string) bool {
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}
