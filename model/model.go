// Package model owns the lifetime of a loaded engine resource.
package model

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/revelaction/udpipe-go/engine"
)

// ErrLoad marks a model that could not be loaded: missing, unreadable, or
// structurally invalid data. Test with errors.Is.
var ErrLoad = errors.New("model load failed")

// Model exclusively owns one loaded engine resource.
//
// A Model may be moved to another goroutine and used there, but must not
// be used from two goroutines at once without external locking: tagging
// and parsing mutate engine-side caches reachable through it. Sessions
// borrow the Model and must not outlive it.
type Model struct {
	res engine.Resource
}

// Load opens and parses a model from path using eng.
func Load(eng engine.Engine, path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	defer f.Close()

	res, err := eng.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	return &Model{res: res}, nil
}

// LoadFromBytes parses a model held in memory. The engine reads directly
// through a read-only view over data; no additional copy of the buffer is
// made, and data is not retained after the call returns.
func LoadFromBytes(eng engine.Engine, data []byte) (*Model, error) {
	res, err := eng.Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: from memory: %v", ErrLoad, err)
	}

	return &Model{res: res}, nil
}

// Resource returns the borrowed engine resource, or nil after Close.
func (m *Model) Resource() engine.Resource {
	return m.res
}

// Close releases the engine resource. Close is idempotent; only the first
// call reaches the engine, so the resource is torn down exactly once.
func (m *Model) Close() error {
	if m.res == nil {
		return nil
	}
	res := m.res
	m.res = nil
	return res.Close()
}
