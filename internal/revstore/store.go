// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package revstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tfctl/revdiff/internal/hasher"
	"github.com/tfctl/revdiff/internal/log"
	"github.com/tfctl/revdiff/internal/model"
	"github.com/tfctl/revdiff/internal/snapshot"
)

// ErrNotFound is returned when a revision does not exist.
var ErrNotFound = errors.New("revision not found")

const schema = `
CREATE TABLE IF NOT EXISTS revisions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	label        TEXT    NOT NULL DEFAULT '',
	created_at   INTEGER NOT NULL,
	object_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS objects (
	revision_id   INTEGER NOT NULL REFERENCES revisions(id) ON DELETE CASCADE,
	position      INTEGER NOT NULL,
	hash          TEXT    NOT NULL,
	previous_hash TEXT    NOT NULL DEFAULT '',
	body          TEXT    NOT NULL,
	PRIMARY KEY (revision_id, position)
);
CREATE INDEX IF NOT EXISTS objects_hash ON objects(hash);
`

// Revision describes one committed snapshot.
type Revision struct {
	ID      int64     `json:"id" yaml:"id"`
	Label   string    `json:"label" yaml:"label"`
	Objects int       `json:"objects" yaml:"objects"`
	Created time.Time `json:"created" yaml:"created"`
}

// Store keeps stamped snapshot revisions in a SQLite database.
type Store struct {
	db     *sql.DB
	hasher hasher.ContentHasher
	ignore []string
	now    func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithHasher sets the hasher used to stamp commits.
func WithHasher(h hasher.ContentHasher) Option {
	return func(s *Store) { s.hasher = h }
}

// WithIgnore sets the names excluded from commit hashes.
func WithIgnore(names ...string) Option {
	return func(s *Store) { s.ignore = append([]string(nil), names...) }
}

// WithClock overrides the commit timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens or creates the store at path.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &Store{
		db:     db,
		hasher: hasher.SHA256{},
		ignore: []string{model.GuidField, model.CustomDataField, model.FragmentsField},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	log.Debugf("revstore opened: %s", path)
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Commit stamps objs and stores them as a new revision. The stamped copies
// are returned; objs is not modified.
func (s *Store) Commit(ctx context.Context, label string, objs []*model.Object) (Revision, []*model.Object, error) {
	stamped, err := snapshot.Stamp(objs, s.hasher, s.ignore)
	if err != nil {
		return Revision{}, nil, err
	}

	rev := Revision{Label: label, Objects: len(stamped), Created: s.now().UTC().Truncate(time.Millisecond)}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, nil, fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`INSERT INTO revisions (label, created_at, object_count) VALUES (?, ?, ?)`,
		rev.Label, rev.Created.UnixMilli(), rev.Objects)
	if err != nil {
		return Revision{}, nil, fmt.Errorf("insert revision: %w", err)
	}
	if rev.ID, err = res.LastInsertId(); err != nil {
		return Revision{}, nil, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO objects (revision_id, position, hash, previous_hash, body) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return Revision{}, nil, err
	}
	defer stmt.Close() //nolint:errcheck

	for i, o := range stamped {
		body, err := json.Marshal(o)
		if err != nil {
			return Revision{}, nil, fmt.Errorf("encode object %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, rev.ID, i, o.Hash.Hash, o.Hash.PreviousHash, string(body)); err != nil {
			return Revision{}, nil, fmt.Errorf("insert object %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Revision{}, nil, fmt.Errorf("commit revision: %w", err)
	}
	log.Debugf("committed revision %d: objects=%d", rev.ID, rev.Objects)
	return rev, stamped, nil
}

// Revisions lists every revision, oldest first.
func (s *Store) Revisions(ctx context.Context) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, created_at, object_count FROM revisions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []Revision
	for rows.Next() {
		var (
			r  Revision
			ms int64
		)
		if err := rows.Scan(&r.ID, &r.Label, &ms, &r.Objects); err != nil {
			return nil, err
		}
		r.Created = time.UnixMilli(ms).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Revision returns the metadata of revision id.
func (s *Store) Revision(ctx context.Context, id int64) (Revision, error) {
	r := Revision{ID: id}
	var ms int64
	err := s.db.QueryRowContext(ctx,
		`SELECT label, created_at, object_count FROM revisions WHERE id = ?`, id).
		Scan(&r.Label, &ms, &r.Objects)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return Revision{}, err
	}
	r.Created = time.UnixMilli(ms).UTC()
	return r, nil
}

// Load returns the objects of revision id in commit order.
func (s *Store) Load(ctx context.Context, id int64) ([]*model.Object, error) {
	if _, err := s.Revision(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM objects WHERE revision_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("load revision %d: %w", id, err)
	}
	defer rows.Close() //nolint:errcheck

	out := []*model.Object{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		o := &model.Object{}
		if err := json.Unmarshal([]byte(body), o); err != nil {
			return nil, fmt.Errorf("decode object of revision %d: %w", id, err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Ancestor returns the stored object whose Hash is hash, searching newest
// revisions first. It resolves a PreviousHash that points outside the
// snapshot being diffed.
func (s *Store) Ancestor(ctx context.Context, hash string) (*model.Object, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM objects WHERE hash = ? ORDER BY revision_id DESC, position DESC LIMIT 1`, hash).
		Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no object with hash %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, err
	}
	o := &model.Object{}
	if err := json.Unmarshal([]byte(body), o); err != nil {
		return nil, err
	}
	return o, nil
}
