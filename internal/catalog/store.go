/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	applog "github.com/sinsweatpants/ara-scriptease/internal/log"
	"github.com/sinsweatpants/ara-scriptease/internal/screenplay"
)

// ErrNotFound is returned when a screenplay id or title does not exist.
var ErrNotFound = errors.New("screenplay not found")

// Stored is one catalog row.
type Stored struct {
	ID        int64
	Title     string
	Text      string
	LineCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is the listing shape: the stored row plus derived counts.
type Summary struct {
	ID         int64
	Title      string
	LineCount  int
	Elements   int
	Characters int
	UpdatedAt  time.Time
}

// SearchQuery describes a full-text lookup over element content. Text uses
// FTS5 MATCH syntax, so plain Arabic words work as-is and quoting enables
// phrase search. Kinds narrows hits to the given element types and
// ScreenplayID to one script; both are optional. Limit defaults to 50 and is
// capped at 200.
type SearchQuery struct {
	Text         string
	Kinds        []string
	ScreenplayID int64
	Limit        int
	Offset       int
}

// SearchHit is one matching element with a bracket-highlighted snippet.
type SearchHit struct {
	ScreenplayID int64
	Title        string
	Seq          int
	Kind         string
	Snippet      string
}

// Save classifies text and stores it under title, replacing any previous
// version of the same title. The derived element and character rows are
// rebuilt inside the same transaction, which keeps the FTS index in step
// through the triggers.
func (c *Catalog) Save(ctx context.Context, title, text string) (int64, error) {
	l := applog.WithOperation(applog.WithComponent("catalog"), "save")
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, errors.New("title is required")
	}
	doc := screenplay.Classify(text)
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM screenplays WHERE title=?`, title).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			`INSERT INTO screenplays (title, text, line_count, created_at, updated_at) VALUES (?,?,?,?,?)`,
			title, text, doc.LineCount, now, now)
		if err != nil {
			return 0, fmt.Errorf("insert screenplay: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("screenplay id: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("find screenplay: %w", err)
	default:
		if _, err := tx.ExecContext(ctx,
			`UPDATE screenplays SET text=?, line_count=?, updated_at=? WHERE id=?`,
			text, doc.LineCount, now, id); err != nil {
			return 0, fmt.Errorf("update screenplay: %w", err)
		}
		if err := deleteDerived(ctx, tx, id); err != nil {
			return 0, err
		}
	}

	if err := insertDerived(ctx, tx, id, doc); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save: %w", err)
	}
	l.Info("screenplay saved",
		slog.Int64("id", id),
		slog.String("title", title),
		slog.Int("elements", len(doc.Elements)),
		slog.Int("characters", len(doc.Result.Characters)),
	)
	return id, nil
}

// Get returns the stored screenplay for id.
func (c *Catalog) Get(ctx context.Context, id int64) (Stored, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, title, text, line_count, created_at, updated_at FROM screenplays WHERE id=?`, id)
	return scanStored(row)
}

// GetByTitle returns the stored screenplay with the given title.
func (c *Catalog) GetByTitle(ctx context.Context, title string) (Stored, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, title, text, line_count, created_at, updated_at FROM screenplays WHERE title=?`,
		strings.TrimSpace(title))
	return scanStored(row)
}

func scanStored(row *sql.Row) (Stored, error) {
	var s Stored
	var created, updated string
	err := row.Scan(&s.ID, &s.Title, &s.Text, &s.LineCount, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Stored{}, ErrNotFound
	}
	if err != nil {
		return Stored{}, fmt.Errorf("read screenplay: %w", err)
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, created)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return s, nil
}

// Elements rebuilds the classified elements of a stored screenplay from its
// derived rows, in document order. Content is newline-joined lines, so the
// per-line breakdown comes back from a split.
func (c *Catalog) Elements(ctx context.Context, id int64) ([]screenplay.ScreenplayElement, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT type, content FROM elements WHERE screenplay_id=? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query elements: %w", err)
	}
	defer rows.Close()
	var out []screenplay.ScreenplayElement
	for rows.Next() {
		var kind, content string
		if err := rows.Scan(&kind, &content); err != nil {
			return nil, fmt.Errorf("scan element: %w", err)
		}
		out = append(out, screenplay.ScreenplayElement{
			Type:    screenplay.ElementType(kind),
			Content: content,
			Lines:   strings.Split(content, "\n"),
		})
	}
	return out, rows.Err()
}

// CharacterNames returns the speakers of a stored screenplay in
// first-appearance order.
func (c *Catalog) CharacterNames(ctx context.Context, id int64) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT name FROM characters WHERE screenplay_id=? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query characters: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// KindCounts returns how many elements of each type a stored screenplay has.
func (c *Catalog) KindCounts(ctx context.Context, id int64) (map[string]int, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT type, COUNT(*) FROM elements WHERE screenplay_id=? GROUP BY type`, id)
	if err != nil {
		return nil, fmt.Errorf("query kind counts: %w", err)
	}
	defer rows.Close()
	counts := map[string]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan kind count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// List returns all stored screenplays, most recently updated first.
func (c *Catalog) List(ctx context.Context) ([]Summary, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT s.id, s.title, s.line_count, s.updated_at,
		       (SELECT COUNT(*) FROM elements e WHERE e.screenplay_id = s.id),
		       (SELECT COUNT(*) FROM characters ch WHERE ch.screenplay_id = s.id)
		FROM screenplays s
		ORDER BY s.updated_at DESC, s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list screenplays: %w", err)
	}
	defer rows.Close()
	var out []Summary
	for rows.Next() {
		var s Summary
		var updated string
		if err := rows.Scan(&s.ID, &s.Title, &s.LineCount, &updated, &s.Elements, &s.Characters); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a screenplay and its derived rows. The element triggers
// keep the FTS index in step, so deletion goes row by row rather than
// through the cascade.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := deleteDerived(ctx, tx, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM screenplays WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete screenplay: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// Search runs an FTS5 MATCH over element content and returns hits with a
// short snippet, match terms wrapped in brackets.
func (c *Catalog) Search(ctx context.Context, q SearchQuery) ([]SearchHit, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, errors.New("search text is required")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT e.screenplay_id, s.title, e.seq, e.type,
		       snippet(fts_elements, 0, '[', ']', '…', 10) AS snip
		FROM fts_elements
		JOIN elements e ON e.id = fts_elements.rowid
		JOIN screenplays s ON s.id = e.screenplay_id
		WHERE fts_elements MATCH ?`)
	args := []any{text}
	if q.ScreenplayID > 0 {
		sb.WriteString(` AND e.screenplay_id = ?`)
		args = append(args, q.ScreenplayID)
	}
	if len(q.Kinds) > 0 {
		sb.WriteString(` AND e.type IN (` + placeholders(len(q.Kinds)) + `)`)
		for _, k := range q.Kinds {
			args = append(args, k)
		}
	}
	sb.WriteString(` ORDER BY e.screenplay_id, e.seq LIMIT ? OFFSET ?`)
	args = append(args, limit, offset)

	rows, err := c.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()
	var hits []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.ScreenplayID, &h.Title, &h.Seq, &h.Kind, &h.Snippet); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Reindex re-runs classification over every stored text and rebuilds the
// derived rows. Useful after classifier changes; the stored text and
// timestamps stay untouched. Returns the number of screenplays reindexed.
func (c *Catalog) Reindex(ctx context.Context) (int, error) {
	l := applog.WithOperation(applog.WithComponent("catalog"), "reindex")
	rows, err := c.db.QueryContext(ctx, `SELECT id, text FROM screenplays ORDER BY id`)
	if err != nil {
		return 0, fmt.Errorf("list for reindex: %w", err)
	}
	type item struct {
		id   int64
		text string
	}
	var items []item
	for rows.Next() {
		var it item
		if err := rows.Scan(&it.id, &it.text); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan for reindex: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	count := 0
	for _, it := range items {
		doc := screenplay.Classify(it.text)
		tx, err := c.db.BeginTx(ctx, nil)
		if err != nil {
			return count, fmt.Errorf("begin reindex: %w", err)
		}
		if err := deleteDerived(ctx, tx, it.id); err != nil {
			_ = tx.Rollback()
			return count, err
		}
		if err := insertDerived(ctx, tx, it.id, doc); err != nil {
			_ = tx.Rollback()
			return count, err
		}
		if err := tx.Commit(); err != nil {
			return count, fmt.Errorf("commit reindex: %w", err)
		}
		count++
	}
	l.Info("reindex complete", slog.Int("screenplays", count))
	return count, nil
}

func deleteDerived(ctx context.Context, tx *sql.Tx, id int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM elements WHERE screenplay_id=?`, id); err != nil {
		return fmt.Errorf("delete elements: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM characters WHERE screenplay_id=?`, id); err != nil {
		return fmt.Errorf("delete characters: %w", err)
	}
	return nil
}

func insertDerived(ctx context.Context, tx *sql.Tx, id int64, doc screenplay.Document) error {
	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO elements (screenplay_id, seq, type, content) VALUES (?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare element insert: %w", err)
	}
	defer ins.Close()
	for i, el := range doc.Elements {
		if _, err := ins.ExecContext(ctx, id, i, string(el.Type), el.Content); err != nil {
			return fmt.Errorf("insert element %d: %w", i, err)
		}
	}
	chIns, err := tx.PrepareContext(ctx,
		`INSERT INTO characters (screenplay_id, position, name) VALUES (?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare character insert: %w", err)
	}
	defer chIns.Close()
	for i, name := range doc.Result.Characters {
		if _, err := chIns.ExecContext(ctx, id, i, name); err != nil {
			return fmt.Errorf("insert character %d: %w", i, err)
		}
	}
	return nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
