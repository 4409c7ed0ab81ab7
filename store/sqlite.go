// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS containers (
    id       TEXT PRIMARY KEY,
    filename TEXT NOT NULL,
    data     BLOB NOT NULL
)`

// SQLite keeps objects in a single table of a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, id uuid.UUID) (Object, error) {
	var obj Object

	err := s.db.QueryRowContext(ctx,
		"SELECT filename, data FROM containers WHERE id = ?", id.String(),
	).Scan(&obj.Filename, &obj.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return Object{}, notFound(id)
	} else if err != nil {
		return Object{}, fmt.Errorf("select container: %w", err)
	}

	return obj, nil
}

func (s *SQLite) Put(ctx context.Context, id uuid.UUID, obj Object) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO containers (id, filename, data) VALUES (?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET filename = excluded.filename, data = excluded.data`,
		id.String(), obj.Filename, nonNil(obj.Data),
	)
	if err != nil {
		return fmt.Errorf("upsert container: %w", err)
	}

	return nil
}

func (s *SQLite) Delete(ctx context.Context, id uuid.UUID) (Object, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Object{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var obj Object

	err = tx.QueryRowContext(ctx,
		"SELECT filename, data FROM containers WHERE id = ?", id.String(),
	).Scan(&obj.Filename, &obj.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return Object{}, notFound(id)
	} else if err != nil {
		return Object{}, fmt.Errorf("select container: %w", err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM containers WHERE id = ?", id.String()); err != nil {
		return Object{}, fmt.Errorf("delete container: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return Object{}, fmt.Errorf("commit: %w", err)
	}

	return obj, nil
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}

	return b
}
