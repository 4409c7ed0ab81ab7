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
	"sync"

	"github.com/google/uuid"
)

// Memory keeps objects in a map. Its contents are lost with the process.
type Memory struct {
	mu      sync.RWMutex
	objects map[uuid.UUID]Object
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[uuid.UUID]Object)}
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[id]
	if !ok {
		return Object{}, notFound(id)
	}

	return clone(obj), nil
}

func (m *Memory) Put(_ context.Context, id uuid.UUID, obj Object) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[id] = clone(obj)

	return nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) (Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[id]
	if !ok {
		return Object{}, notFound(id)
	}

	delete(m.objects, id)

	return obj, nil
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.objects)
}
