package filesystem

import (
	"errors"
	"testing"

	"github.com/revelaction/udpipe-go/sentence"
	"github.com/revelaction/udpipe-go/storage"
)

func newWord(id int, form, lemma string) sentence.Word {
	return sentence.Word{Id: id, Form: form, Lemma: lemma}
}

func testDoc(title string, labels []string, lemmas ...string) sentence.Doc {
	var words []sentence.Word
	for i, l := range lemmas {
		words = append(words, newWord(i+1, l, l))
	}
	return sentence.Doc{
		Title:     title,
		Labels:    labels,
		Sentences: []sentence.Sentence{{Words: words}},
	}
}

func newStore(t *testing.T, docs ...sentence.Doc) *DocStore {
	t.Helper()
	dir := t.TempDir()

	w, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("NewDocStore: %v", err)
	}
	for _, d := range docs {
		if err := w.Write(d); err != nil {
			t.Fatalf("Write %s: %v", d.Title, err)
		}
	}

	// Reopen so the directory listing picks up the files.
	h, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("NewDocStore reopen: %v", err)
	}
	return h
}

func TestListAndRead(t *testing.T) {
	h := newStore(t,
		testDoc("alpha", []string{"news"}, "cat", "sit"),
		testDoc("beta", []string{"fiction"}, "dog", "run"),
	)

	docs, err := h.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].Title != "alpha.json" || docs[1].Title != "beta.json" {
		t.Errorf("unexpected titles: %q, %q", docs[0].Title, docs[1].Title)
	}

	doc, err := h.Read(1)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(doc.Sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(doc.Sentences))
	}
	if doc.Sentences[0].Words[0].Lemma != "dog" {
		t.Errorf("expected lemma dog, got %q", doc.Sentences[0].Words[0].Lemma)
	}
}

func TestListLabelFilter(t *testing.T) {
	h := newStore(t,
		testDoc("alpha", []string{"news"}, "cat"),
		testDoc("beta", []string{"fiction"}, "dog"),
	)

	docs, err := h.List("fic")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 || docs[0].Title != "beta.json" {
		t.Fatalf("expected only beta.json, got %v", docs)
	}
}

func TestReadOutOfRange(t *testing.T) {
	h := newStore(t, testDoc("alpha", nil, "cat"))

	if _, err := h.Read(5); err == nil {
		t.Fatal("expected error for out of range id")
	}
}

func TestFindCandidates(t *testing.T) {
	h := newStore(t,
		testDoc("alpha", []string{"news"}, "cat", "sit", "mat"),
		testDoc("beta", []string{"fiction"}, "cat", "run"),
		testDoc("gamma", []string{"news"}, "dog", "sit"),
	)

	var hits []storage.SentenceHit
	cursor, err := h.FindCandidates([]string{"cat"}, nil, 0, 10, func(hit storage.SentenceHit) error {
		hits = append(hits, hit)
		return nil
	})
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if cursor == 0 {
		t.Error("expected cursor to advance")
	}
}

func TestFindCandidatesAllLemmas(t *testing.T) {
	h := newStore(t,
		testDoc("alpha", nil, "cat", "sit"),
		testDoc("beta", nil, "cat", "run"),
	)

	var hits []storage.SentenceHit
	_, err := h.FindCandidates([]string{"cat", "sit"}, nil, 0, 10, func(hit storage.SentenceHit) error {
		hits = append(hits, hit)
		return nil
	})
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].DocTitle != "alpha.json" {
		t.Errorf("expected hit in alpha.json, got %q", hits[0].DocTitle)
	}
}

func TestFindCandidatesLabelFilter(t *testing.T) {
	h := newStore(t,
		testDoc("alpha", []string{"news"}, "cat"),
		testDoc("beta", []string{"fiction"}, "cat"),
	)

	var hits []storage.SentenceHit
	_, err := h.FindCandidates([]string{"cat"}, []string{"fiction"}, 0, 10, func(hit storage.SentenceHit) error {
		hits = append(hits, hit)
		return nil
	})
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(hits) != 1 || hits[0].DocTitle != "beta.json" {
		t.Fatalf("expected only beta.json, got %v", hits)
	}
}

func TestFindCandidatesPagination(t *testing.T) {
	h := newStore(t,
		testDoc("alpha", nil, "cat"),
		testDoc("beta", nil, "cat"),
		testDoc("gamma", nil, "cat"),
	)

	var first []storage.SentenceHit
	cursor, err := h.FindCandidates([]string{"cat"}, nil, 0, 2, func(hit storage.SentenceHit) error {
		first = append(first, hit)
		return nil
	})
	if err != nil {
		t.Fatalf("FindCandidates page 1: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 hits on first page, got %d", len(first))
	}

	var second []storage.SentenceHit
	_, err = h.FindCandidates([]string{"cat"}, nil, cursor, 2, func(hit storage.SentenceHit) error {
		second = append(second, hit)
		return nil
	})
	if err != nil {
		t.Fatalf("FindCandidates page 2: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected 1 hit on second page, got %d", len(second))
	}
	if second[0].RowID <= first[1].RowID {
		t.Errorf("second page should resume after first: %d <= %d", second[0].RowID, first[1].RowID)
	}
}

func TestFindCandidatesCallbackError(t *testing.T) {
	h := newStore(t, testDoc("alpha", nil, "cat"))

	boom := errors.New("boom")
	_, err := h.FindCandidates([]string{"cat"}, nil, 0, 10, func(hit storage.SentenceHit) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
}

func TestLabels(t *testing.T) {
	h := newStore(t,
		testDoc("alpha", []string{"news", "en"}, "cat"),
		testDoc("beta", []string{"fiction", "en"}, "dog"),
	)

	labels, err := h.Labels("")
	if err != nil {
		t.Fatalf("Labels: %v", err)
	}
	want := []string{"en", "fiction", "news"}
	if len(labels) != len(want) {
		t.Fatalf("expected %v, got %v", want, labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}

	filtered, err := h.Labels("new")
	if err != nil {
		t.Fatalf("Labels: %v", err)
	}
	if len(filtered) != 1 || filtered[0] != "news" {
		t.Errorf("expected [news], got %v", filtered)
	}
}

func TestPreloadCallback(t *testing.T) {
	h := newStore(t,
		testDoc("alpha", nil, "cat"),
		testDoc("beta", nil, "dog"),
	)

	var names []string
	err := h.Preload(func(total int, name string) {
		if total != 2 {
			t.Errorf("expected total 2, got %d", total)
		}
		names = append(names, name)
	})
	if err != nil {
		t.Fatalf("Preload: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 callbacks, got %d", len(names))
	}

	// Second Preload is a no-op.
	calls := 0
	if err := h.Preload(func(int, string) { calls++ }); err != nil {
		t.Fatalf("Preload again: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no callbacks on second Preload, got %d", calls)
	}
}

func TestWriteKeepsAlphabeticalIds(t *testing.T) {
	h := newStore(t,
		testDoc("beta", nil, "dog"),
		testDoc("gamma", nil, "bird"),
	)
	if err := h.Preload(nil); err != nil {
		t.Fatalf("Preload: %v", err)
	}

	// a title sorting before the existing docs must not get the
	// highest id
	if err := h.Write(testDoc("alpha", nil, "cat")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	docs, err := h.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	wantTitles := []string{"alpha.json", "beta.json", "gamma.json"}
	for i, want := range wantTitles {
		if docs[i].Title != want || docs[i].Id != i {
			t.Errorf("docs[%d] = {Id: %d, Title: %q}, want {Id: %d, Title: %q}", i, docs[i].Id, docs[i].Title, i, want)
		}
	}

	doc, err := h.Read(0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Sentences[0].Words[0].Lemma != "cat" {
		t.Errorf("id 0 must be alpha, got lemmas %+v", doc.Sentences[0].Words)
	}

	// a reopened store assigns the same ids
	reopened, err := NewDocStore(h.docDir)
	if err != nil {
		t.Fatalf("NewDocStore reopen: %v", err)
	}
	reList, err := reopened.List("")
	if err != nil {
		t.Fatalf("List reopened: %v", err)
	}
	for i := range docs {
		if reList[i].Id != docs[i].Id || reList[i].Title != docs[i].Title {
			t.Errorf("reopened docs[%d] = %+v, want %+v", i, reList[i], docs[i])
		}
	}
}

func TestWriteNoTitle(t *testing.T) {
	h := newStore(t)
	if err := h.Write(sentence.Doc{}); err == nil {
		t.Fatal("expected error for doc without title")
	}
}
