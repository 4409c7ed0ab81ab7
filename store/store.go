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

// Package store persists encoded containers as opaque blobs keyed by id.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"m4o.io/gpstools/model"
)

// Object is a stored blob together with the name of the file it was
// created from.
type Object struct {
	Filename string
	Data     []byte
}

// Store is the storage collaborator of the file service. Every call is
// atomic on its own; callers serialize read-modify-write cycles.
type Store interface {
	// Get returns the object stored under id or model.ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (Object, error)

	// Put stores the object under id, replacing any previous object.
	Put(ctx context.Context, id uuid.UUID, obj Object) error

	// Delete removes and returns the object stored under id or returns
	// model.ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) (Object, error)
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("container %s: %w", id, model.ErrNotFound)
}

func clone(obj Object) Object {
	return Object{Filename: obj.Filename, Data: append([]byte(nil), obj.Data...)}
}
