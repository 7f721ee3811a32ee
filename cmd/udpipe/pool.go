package main

import (
	"github.com/revelaction/udpipe-go/storage/sqlite/zombiezen"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Pool opens the corpus database lazily and at most once per command
// invocation, so commands that never touch SQLite (or run against a
// directory store) pay nothing for it.
type Pool struct {
	p *sqlitex.Pool
}

// Open returns the shared pool, opening the database on first use.
func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p == nil {
		pool, err := zombiezen.NewPool(path)
		if err != nil {
			return nil, err
		}
		p.p = pool
	}
	return p.p, nil
}

// Close is safe to defer unconditionally; it is a no-op when the
// database was never opened.
func (p *Pool) Close() error {
	if p.p == nil {
		return nil
	}
	return p.p.Close()
}
