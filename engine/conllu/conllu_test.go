package conllu

import (
	"errors"
	"strings"
	"testing"

	"github.com/revelaction/udpipe-go/engine"
	"github.com/revelaction/udpipe-go/model"
	"github.com/revelaction/udpipe-go/parser"
	"github.com/revelaction/udpipe-go/sentence"
)

const foxConllu = `# sent_id = 1
# text = The quick brown fox jumps over the lazy dog.
1	The	the	DET	DT	Definite=Def|PronType=Art	4	det	_	_
2	quick	quick	ADJ	JJ	Degree=Pos	4	amod	_	_
3	brown	brown	ADJ	JJ	Degree=Pos	4	amod	_	_
4	fox	fox	NOUN	NN	Number=Sing	5	nsubj	_	_
5	jumps	jump	VERB	VBZ	Number=Sing|Person=3|Tense=Pres	0	root	_	_
6	over	over	ADP	IN	_	9	case	_	_
7	the	the	DET	DT	Definite=Def|PronType=Art	9	det	_	_
8	lazy	lazy	ADJ	JJ	Degree=Pos	9	amod	_	_
9	dog	dog	NOUN	NN	Number=Sing	5	obl	_	SpaceAfter=No
10	.	.	PUNCT	.	_	5	punct	_	_
`

const twoSentences = `# text = Hello world.
1	Hello	hello	INTJ	UH	_	0	root	_	_
2	world	world	NOUN	NN	Number=Sing	1	vocative	_	SpaceAfter=No
3	.	.	PUNCT	.	_	1	punct	_	_

# text = Goodbye world.
1	Goodbye	goodbye	INTJ	UH	_	0	root	_	_
2	world	world	NOUN	NN	Number=Sing	1	vocative	_	SpaceAfter=No
3	.	.	PUNCT	.	_	1	punct	_	_
`

const mwtConllu = `# text = vámonos
1-2	vámonos	_	_	_	_	_	_	_	SpaceAfter=No
1	vamos	ir	VERB	_	Mood=Imp	0	root	_	_
2	nos	nosotros	PRON	_	Case=Acc	1	obj	_	_
`

func collect(t *testing.T, opts, input string) []sentence.Sentence {
	t.Helper()

	m, err := model.LoadFromBytes(New(), []byte(opts))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	defer m.Close()

	ss, err := parser.Collect(m, input)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	return ss
}

func TestFoxSentence(t *testing.T) {
	got := collect(t, "", foxConllu)

	if len(got) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(got))
	}
	s := got[0]

	if len(s.Words) != 10 {
		t.Fatalf("expected 10 words, got %d", len(s.Words))
	}

	jumps := s.Words[4]
	if jumps.Form != "jumps" || jumps.Head != 0 || jumps.DepRel != "root" {
		t.Errorf("word 5: %+v, want jumps/root/head 0", jumps)
	}

	the := s.Words[0]
	if the.Form != "The" || the.Head != 4 || the.DepRel != "det" {
		t.Errorf("word 1: %+v, want The/det/head 4", the)
	}

	// underscore fields map to empty strings
	if s.Words[5].Feats != "" {
		t.Errorf("feats %q, want empty for underscore", s.Words[5].Feats)
	}

	// children built by the parse step
	want := map[int][]int{4: {1, 2, 3}, 5: {4, 9, 10}, 9: {6, 7, 8}}
	for id, children := range want {
		w := s.Words[id-1]
		if len(w.Children) != len(children) {
			t.Fatalf("word %d children %v, want %v", id, w.Children, children)
		}
		for i, c := range children {
			if w.Children[i] != c {
				t.Errorf("word %d children %v, want %v", id, w.Children, children)
			}
		}
	}

	if len(s.Comments) != 2 || !strings.HasPrefix(s.Comments[0], "# sent_id") {
		t.Errorf("comments not preserved: %v", s.Comments)
	}
}

func TestTwoSentencesRestartIds(t *testing.T) {
	got := collect(t, "", twoSentences)

	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(got))
	}
	for i, s := range got {
		if len(s.Words) != 3 {
			t.Fatalf("sentence %d: expected 3 words, got %d", i, len(s.Words))
		}
		for j, w := range s.Words {
			if w.Id != j+1 {
				t.Errorf("sentence %d word %d: id %d, numbering must restart at 1", i, j, w.Id)
			}
		}
	}
	if got[0].Words[0].Form != "Hello" || got[1].Words[0].Form != "Goodbye" {
		t.Errorf("sentences out of order")
	}
}

func TestMultiwordToken(t *testing.T) {
	got := collect(t, "", mwtConllu)

	if len(got) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(got))
	}
	s := got[0]

	if len(s.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(s.Words))
	}
	if len(s.MultiwordTokens) != 1 {
		t.Fatalf("expected 1 multiword token, got %d", len(s.MultiwordTokens))
	}

	mwt := s.MultiwordTokens[0]
	if mwt.Form != "vámonos" || mwt.IdFirst != 1 || mwt.IdLast != 2 {
		t.Errorf("unexpected multiword token: %+v", mwt)
	}
	if mwt.Misc != "SpaceAfter=No" {
		t.Errorf("multiword token misc %q", mwt.Misc)
	}
}

func TestEmptyNodesSkipped(t *testing.T) {
	input := `1	Sue	Sue	PROPN	_	_	2	nsubj	_	_
2	likes	like	VERB	_	_	0	root	_	_
3	coffee	coffee	NOUN	_	_	2	obj	_	_
3.1	likes	like	VERB	_	_	_	_	_	_
4	and	and	CCONJ	_	_	5	cc	_	_
5	tea	tea	NOUN	_	_	3	conj	_	_
`
	got := collect(t, "", input)
	if len(got) != 1 || len(got[0].Words) != 5 {
		t.Fatalf("empty node must be skipped, got %+v", got)
	}
}

func TestMalformedLineSkippedByDefault(t *testing.T) {
	input := "not a conllu line\n" +
		"1	Hi	hi	INTJ	_	_	0	root	_	_\n"

	got := collect(t, "", input)
	if len(got) != 1 || len(got[0].Words) != 1 {
		t.Fatalf("malformed line must be skipped, got %+v", got)
	}
}

func TestMalformedLineDropsWholeSentence(t *testing.T) {
	// line 3 has 9 fields; skipping only that line would leave words
	// 1,2,4 at positions that no longer match their ids, with word 4's
	// head pointing at the wrong word.
	input := "1	He	he	PRON	_	_	2	nsubj	_	_\n" +
		"2	fell	fall	VERB	_	_	0	root	_	_\n" +
		"3	right	right	ADV	_	_	4	advmod	_\n" +
		"4	down	down	ADV	_	_	3	advmod	_	_\n" +
		"\n" +
		"1	Hi	hi	INTJ	_	_	0	root	_	_\n"

	got := collect(t, "", input)
	if len(got) != 1 {
		t.Fatalf("expected the gapped sentence to be dropped, got %d sentences", len(got))
	}
	if got[0].Words[0].Form != "Hi" {
		t.Fatalf("expected only the intact sentence, got %+v", got[0])
	}
}

func TestIdGapLenient(t *testing.T) {
	// valid lines, but the numbering itself has a hole
	input := "1	He	he	PRON	_	_	2	nsubj	_	_\n" +
		"2	fell	fall	VERB	_	_	0	root	_	_\n" +
		"4	down	down	ADV	_	_	2	advmod	_	_\n"

	got := collect(t, "", input)
	if len(got) != 0 {
		t.Fatalf("expected no sentences for gapped numbering, got %+v", got)
	}
}

func TestIdGapStrict(t *testing.T) {
	m, err := model.LoadFromBytes(New(), []byte(`{"strict": true}`))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	defer m.Close()

	input := "1	He	he	PRON	_	_	2	nsubj	_	_\n" +
		"2	fell	fall	VERB	_	_	0	root	_	_\n" +
		"4	down	down	ADV	_	_	2	advmod	_	_\n"

	_, err = parser.Collect(m, input)
	if !errors.Is(err, parser.ErrTokenize) {
		t.Fatalf("expected ErrTokenize, got %v", err)
	}
}

func TestParseRejectsMisnumberedTree(t *testing.T) {
	res, err := New().Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer res.Close()

	var tree engine.Tree
	tree.AddRoot()
	tree.Words = append(tree.Words,
		engine.TreeWord{ID: 1, Form: "He", Head: 2},
		engine.TreeWord{ID: 4, Form: "down", Head: 2},
	)

	if err := res.Parse(&tree); err == nil {
		t.Fatal("expected error for a tree whose ids do not match positions")
	}
}

func TestMalformedLineStrict(t *testing.T) {
	m, err := model.LoadFromBytes(New(), []byte(`{"strict": true}`))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	defer m.Close()

	_, err = parser.Collect(m, "not a conllu line\n")
	if !errors.Is(err, parser.ErrTokenize) {
		t.Fatalf("expected ErrTokenize, got %v", err)
	}
}

func TestMissingTagStrict(t *testing.T) {
	m, err := model.LoadFromBytes(New(), []byte(`{"strict": true}`))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	defer m.Close()

	_, err = parser.Collect(m, "1	word	word	_	_	_	0	root	_	_\n")
	if !errors.Is(err, parser.ErrTag) {
		t.Fatalf("expected ErrTag, got %v", err)
	}
}

func TestHeadOutOfRange(t *testing.T) {
	m, err := model.LoadFromBytes(New(), nil)
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	defer m.Close()

	_, err = parser.Collect(m, "1	word	word	NOUN	_	_	7	root	_	_\n")
	if !errors.Is(err, parser.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestCorruptModelData(t *testing.T) {
	_, err := New().Load(strings.NewReader("{not json"))
	if err == nil {
		t.Fatal("corrupt model data must fail to load")
	}
}

func TestCommentOnlyBlocksSkipped(t *testing.T) {
	input := "# just a comment\n\n\n# text = Hi\n1	Hi	hi	INTJ	_	_	0	root	_	_\n"

	got := collect(t, "", input)
	if len(got) != 1 || len(got[0].Words) != 1 {
		t.Fatalf("expected the comment-only block to be skipped, got %+v", got)
	}
}

func TestCRLFInput(t *testing.T) {
	input := strings.ReplaceAll(twoSentences, "\n", "\r\n")

	got := collect(t, "", input)
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences with CRLF input, got %d", len(got))
	}
}

func TestTokenizerDirect(t *testing.T) {
	res, err := New().Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer res.Close()

	tok, err := res.NewTokenizer()
	if err != nil {
		t.Fatalf("new tokenizer: %v", err)
	}
	tok.SetText(twoSentences)

	var tree engine.Tree
	count := 0
	for {
		ok, err := tok.Next(&tree)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if !ok {
			break
		}
		// virtual root present at index 0
		if tree.Words[0].ID != 0 {
			t.Fatalf("expected virtual root at index 0, got %+v", tree.Words[0])
		}
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 blocks, got %d", count)
	}

	// exhausted tokenizer stays exhausted
	if ok, err := tok.Next(&tree); ok || err != nil {
		t.Fatalf("after end of text: (%t, %v)", ok, err)
	}
}

func TestClosedResource(t *testing.T) {
	res, err := New().Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	res.Close()

	if _, err := res.NewTokenizer(); err == nil {
		t.Error("tokenizer from a closed resource must fail")
	}
}
