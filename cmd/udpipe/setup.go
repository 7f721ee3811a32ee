package main

import (
	"fmt"
	"os"

	"github.com/revelaction/udpipe-go/storage"
	"github.com/revelaction/udpipe-go/storage/filesystem"
	"github.com/revelaction/udpipe-go/storage/sqlite/zombiezen"
)

// NewDocRepository returns a document repository for path: a directory
// gives the filesystem store, anything else a SQLite store.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// A fresh SQLite file is created on first open.
			return newSqliteRepo(p, path)
		}
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	return newSqliteRepo(p, path)
}

func newSqliteRepo(p *Pool, path string) (storage.DocRepository, error) {
	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	if err := zombiezen.CreateDocTables(pool); err != nil {
		return nil, fmt.Errorf("failed to create docs tables: %w", err)
	}
	return zombiezen.NewDocStore(pool), nil
}
