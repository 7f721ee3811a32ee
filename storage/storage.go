// Package storage defines the repositories for persisted annotated
// documents. Implementations exist for a directory of JSON files
// (storage/filesystem) and for SQLite (storage/sqlite/zombiezen).
//
// The parse layer never reads from these repositories; they store
// finished output documents for later querying.
package storage

import (
	"github.com/revelaction/udpipe-go/sentence"
)

// Cursor for paginated lemma-based queries.
type Cursor int64

// SentenceHit is one sentence returned by a lemma query, with enough
// context to locate it in its document.
type SentenceHit struct {
	RowID    int64
	DocId    int
	DocTitle string
	Sentence sentence.Sentence
}

// DocReader defines read operations for document storage.
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one
	// label containing the string are returned. Content (Sentences)
	// is not loaded.
	List(labelMatch string) ([]sentence.Doc, error)

	// Read returns a document by id, sentences included.
	Read(id int) (sentence.Doc, error)

	// FindCandidates streams sentences containing ALL given lemmas
	// from documents carrying ALL given labels, resuming after the
	// given cursor. It calls onHit for each result, up to limit, and
	// returns the new cursor.
	FindCandidates(lemmas []string, labels []string, after Cursor, limit int, onHit func(SentenceHit) error) (Cursor, error)

	// Labels returns all unique labels found across all documents,
	// sorted alphabetically. If pattern is not empty, only labels
	// containing the pattern are returned.
	Labels(pattern string) ([]string, error)
}

// DocWriter defines write operations for document storage.
type DocWriter interface {
	// Write persists a document, its sentences and its lemma index.
	Write(doc sentence.Doc) error
}

// DocRepository combines read and write operations.
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader is an optional capability for repositories that support
// eager loading of contents into memory.
type Preloader interface {
	Preload(cb func(total int, name string)) error
}
