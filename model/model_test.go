package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/revelaction/udpipe-go/engine/conllu"
	"github.com/revelaction/udpipe-go/engine/enginetest"
)

func TestLoadMissingFile(t *testing.T) {
	eng := &enginetest.Engine{}

	_, err := Load(eng, "/does/not/exist.udpipe")
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
	if !strings.Contains(err.Error(), "/does/not/exist.udpipe") {
		t.Errorf("error should name the path: %v", err)
	}
}

func TestLoadFromBytesEngineFailure(t *testing.T) {
	eng := &enginetest.Engine{LoadErr: errors.New("bad magic")}

	_, err := LoadFromBytes(eng, []byte("garbage"))
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
	if err.Error() == "" {
		t.Error("load failure must carry a message")
	}
}

func TestLoadFromBytesCorruptModel(t *testing.T) {
	// the conllu engine treats non-JSON model data as structurally invalid
	_, err := LoadFromBytes(conllu.New(), []byte{0x00, 0xff, 0x13, 0x37})
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}

func TestLoadFromBytesPassesView(t *testing.T) {
	res := &enginetest.Resource{}
	eng := &enginetest.Engine{Res: res}

	data := []byte(`{"opt":true}`)
	m, err := LoadFromBytes(eng, data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer m.Close()

	if string(res.ModelData) != string(data) {
		t.Errorf("engine read %q through the view, want %q", res.ModelData, data)
	}
}

func TestCloseIdempotent(t *testing.T) {
	res := &enginetest.Resource{}
	m, err := LoadFromBytes(&enginetest.Engine{Res: res}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second close must be a no-op: %v", err)
	}

	if res.CloseCount != 1 {
		t.Errorf("engine resource closed %d times, want exactly once", res.CloseCount)
	}
	if m.Resource() != nil {
		t.Error("resource must be nil after close")
	}
}
