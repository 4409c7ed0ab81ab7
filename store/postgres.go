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
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS containers (
    id       UUID PRIMARY KEY,
    filename TEXT NOT NULL,
    data     BYTEA NOT NULL
)`

// Postgres keeps objects in a table of a PostgreSQL database.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a store on pool and creates its table.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// OpenPostgres connects to the database at url.
func OpenPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	p, err := NewPostgres(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return p, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()

	return nil
}

func (p *Postgres) Get(ctx context.Context, id uuid.UUID) (Object, error) {
	var obj Object

	err := p.pool.QueryRow(ctx,
		"SELECT filename, data FROM containers WHERE id = $1", id,
	).Scan(&obj.Filename, &obj.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return Object{}, notFound(id)
	} else if err != nil {
		return Object{}, fmt.Errorf("select container: %w", err)
	}

	return obj, nil
}

func (p *Postgres) Put(ctx context.Context, id uuid.UUID, obj Object) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO containers (id, filename, data) VALUES ($1, $2, $3)
         ON CONFLICT (id) DO UPDATE SET filename = EXCLUDED.filename, data = EXCLUDED.data`,
		id, obj.Filename, nonNil(obj.Data),
	)
	if err != nil {
		return fmt.Errorf("upsert container: %w", err)
	}

	return nil
}

func (p *Postgres) Delete(ctx context.Context, id uuid.UUID) (Object, error) {
	var obj Object

	err := p.pool.QueryRow(ctx,
		"DELETE FROM containers WHERE id = $1 RETURNING filename, data", id,
	).Scan(&obj.Filename, &obj.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return Object{}, notFound(id)
	} else if err != nil {
		return Object{}, fmt.Errorf("delete container: %w", err)
	}

	return obj, nil
}
