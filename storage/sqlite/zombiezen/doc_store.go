// Package zombiezen implements document storage on SQLite using the
// zombiezen.com/go/sqlite driver.
package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/revelaction/udpipe-go/sentence"
	"github.com/revelaction/udpipe-go/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List(labelMatch string) ([]sentence.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	query := "SELECT id, title, labels FROM docs ORDER BY title"
	var args []interface{}
	if labelMatch != "" {
		query = "SELECT id, title, labels FROM docs WHERE labels LIKE ? ORDER BY title"
		args = append(args, "%"+labelMatch+"%")
	}

	var docs []sentence.Doc
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := sentence.Doc{
				Id:    stmt.ColumnInt(0),
				Title: stmt.ColumnText(1),
			}
			labelsStr := stmt.ColumnText(2)
			if labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}
			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sentence.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sentence.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sentence.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			labelsStr := stmt.ColumnText(1)
			if labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}
			return nil
		},
	})
	if err != nil {
		return sentence.Doc{}, err
	}
	if !found {
		return sentence.Doc{}, fmt.Errorf("doc not found: %d", id)
	}

	err = sqlitex.Execute(conn, "SELECT data FROM sentences WHERE doc_id = ? ORDER BY rowid", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var s sentence.Sentence
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &s); err != nil {
				return err
			}
			doc.Sentences = append(doc.Sentences, s)
			return nil
		},
	})
	if err != nil {
		return sentence.Doc{}, err
	}

	return doc, nil
}

// FindCandidates streams sentences that contain ALL given lemmas, from
// documents whose labels match ALL given label filters.
func (h *DocStore) FindCandidates(lemmas []string, labels []string, after storage.Cursor, limit int, onHit func(storage.SentenceHit) error) (storage.Cursor, error) {
	if len(lemmas) == 0 {
		return after, nil
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return after, err
	}
	defer h.pool.Put(conn)

	// Build query dynamically based on number of lemmas. INTERSECT
	// keeps only sentence_rowids that contain ALL lemmas and makes
	// the resulting set unique.
	var queryBuilder strings.Builder
	var args []interface{}

	for i, lemma := range lemmas {
		if i > 0 {
			queryBuilder.WriteString(" INTERSECT ")
		}
		queryBuilder.WriteString("SELECT sentence_rowid FROM sentence_lemmas WHERE lemma = ? AND sentence_rowid > ?")
		args = append(args, lemma, after)
	}
	queryBuilder.WriteString(" LIMIT ?")
	args = append(args, limit)

	// We need to fetch the rowIDs first
	var rowIDs []int64
	err = sqlitex.Execute(conn, queryBuilder.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rowIDs = append(rowIDs, stmt.ColumnInt64(0))
			return nil
		},
	})
	if err != nil {
		return after, err
	}

	if len(rowIDs) == 0 {
		return after, nil
	}

	// TODO: Consolidate into a single query using a subquery for better performance.
	// For now, we use a second bulk query to fetch the sentence data.
	idStrings := make([]string, len(rowIDs))
	for i, id := range rowIDs {
		idStrings[i] = strconv.FormatInt(id, 10)
	}
	idList := strings.Join(idStrings, ",")

	var labelArgs []interface{}
	var labelClauses strings.Builder
	for _, l := range labels {
		labelClauses.WriteString(" AND d.labels LIKE ?")
		labelArgs = append(labelArgs, "%"+l+"%")
	}

	query := fmt.Sprintf(
		"SELECT s.rowid, s.doc_id, d.title, s.data FROM sentences s JOIN docs d ON d.id = s.doc_id WHERE s.rowid IN (%s)%s ORDER BY s.rowid",
		idList, labelClauses.String())

	newCursor := after
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: labelArgs,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rowID := stmt.ColumnInt64(0)
			if storage.Cursor(rowID) > newCursor {
				newCursor = storage.Cursor(rowID)
			}

			hit := storage.SentenceHit{
				RowID:    rowID,
				DocId:    stmt.ColumnInt(1),
				DocTitle: stmt.ColumnText(2),
			}
			if err := json.Unmarshal([]byte(stmt.ColumnText(3)), &hit.Sentence); err != nil {
				return err
			}
			return onHit(hit)
		},
	})
	if err != nil {
		return after, err
	}

	// The cursor advances past label-filtered rows too, so the next
	// page resumes after everything visited by the lemma query.
	for _, id := range rowIDs {
		if storage.Cursor(id) > newCursor {
			newCursor = storage.Cursor(id)
		}
	}

	return newCursor, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	docs, err := h.List("")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for _, doc := range docs {
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

func (h *DocStore) Write(doc sentence.Doc) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	// Insert Doc
	labels := strings.Join(doc.Labels, ",")
	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Title, labels},
	})
	if err != nil {
		return fmt.Errorf("failed to insert doc: %w", err)
	}
	docID := conn.LastInsertRowID()

	for _, s := range doc.Sentences {
		data, marshalErr := json.Marshal(s)
		if marshalErr != nil {
			return marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, data) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{docID, string(data)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert sentence: %w", err)
		}
		sentRowID := conn.LastInsertRowID()

		// Extract unique lemmas
		uniqueLemmas := make(map[string]bool)
		for _, w := range s.Words {
			if w.Lemma != "" {
				uniqueLemmas[w.Lemma] = true
			}
		}

		for lemma := range uniqueLemmas {
			err = sqlitex.Execute(conn, "INSERT INTO sentence_lemmas (lemma, sentence_rowid) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{lemma, sentRowID},
			})
			if err != nil {
				return fmt.Errorf("failed to insert lemma: %w", err)
			}
		}
	}

	return nil
}
