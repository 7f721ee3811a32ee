package download

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilename(t *testing.T) {
	got := Filename("english-ewt")
	want := "english-ewt-ud-2.5-191206.udpipe"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestFetchUnknownLanguage(t *testing.T) {
	_, err := Fetch("klingon-kdt", t.TempDir(), nil)
	if err == nil {
		t.Fatal("expected error for unknown language")
	}
	if !strings.Contains(err.Error(), "klingon-kdt") {
		t.Errorf("error should name the language: %v", err)
	}
	if !strings.Contains(err.Error(), Available[0]) {
		t.Errorf("error should suggest available languages: %v", err)
	}
}

func TestFetchURL(t *testing.T) {
	content := []byte("model bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "models", "test.udpipe")

	var lastDone int64
	err := FetchURL(srv.URL, path, func(done, total int64) {
		lastDone = done
	})
	if err != nil {
		t.Fatalf("FetchURL: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("downloaded %q, want %q", data, content)
	}
	if lastDone != int64(len(content)) {
		t.Errorf("progress reported %d bytes, want %d", lastDone, len(content))
	}
}

func TestFetchURLEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with no body
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "empty.udpipe")
	if err := FetchURL(srv.URL, path, nil); err == nil {
		t.Fatal("expected error for empty body")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty download should not leave a file behind")
	}
}

func TestFetchURLNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "missing.udpipe")
	err := FetchURL(srv.URL, path, nil)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should carry the status: %v", err)
	}
}
