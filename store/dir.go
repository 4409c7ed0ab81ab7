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
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const (
	dataExt   = ".gpstools"
	nameExt   = ".name"
	lockFile  = ".lock"
	lockRetry = 20 * time.Millisecond
	dirPerm   = 0o755
	filePerm  = 0o644
)

// Dir keeps every object as a data file and a file name sidecar in a
// directory. An advisory file lock guards the directory against other
// processes sharing it; a Flock is not reentrant across goroutines so
// calls within the process are serialized by mu.
type Dir struct {
	root string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewDir returns a store rooted at root, creating the directory if needed.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	return &Dir{
		root: root,
		lock: flock.New(filepath.Join(root, lockFile)),
	}, nil
}

func (d *Dir) paths(id uuid.UUID) (string, string) {
	base := filepath.Join(d.root, id.String())

	return base + dataExt, base + nameExt
}

func (d *Dir) Get(ctx context.Context, id uuid.UUID) (Object, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.lock.TryRLockContext(ctx, lockRetry); err != nil {
		return Object{}, fmt.Errorf("lock store: %w", err)
	}
	defer d.lock.Unlock()

	return d.read(id)
}

func (d *Dir) read(id uuid.UUID) (Object, error) {
	dataPath, namePath := d.paths(id)

	data, err := os.ReadFile(dataPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Object{}, notFound(id)
	} else if err != nil {
		return Object{}, fmt.Errorf("read %s: %w", dataPath, err)
	}

	name, err := os.ReadFile(namePath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Object{}, fmt.Errorf("read %s: %w", namePath, err)
	}

	return Object{Filename: string(name), Data: data}, nil
}

func (d *Dir) Put(ctx context.Context, id uuid.UUID, obj Object) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.lock.TryLockContext(ctx, lockRetry); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer d.lock.Unlock()

	dataPath, namePath := d.paths(id)

	if err := writeFileAtomic(namePath, []byte(obj.Filename)); err != nil {
		return err
	}

	return writeFileAtomic(dataPath, obj.Data)
}

func (d *Dir) Delete(ctx context.Context, id uuid.UUID) (Object, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.lock.TryLockContext(ctx, lockRetry); err != nil {
		return Object{}, fmt.Errorf("lock store: %w", err)
	}
	defer d.lock.Unlock()

	obj, err := d.read(id)
	if err != nil {
		return Object{}, err
	}

	dataPath, namePath := d.paths(id)

	if err := os.Remove(dataPath); err != nil {
		return Object{}, fmt.Errorf("remove %s: %w", dataPath, err)
	}

	if err := os.Remove(namePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Object{}, fmt.Errorf("remove %s: %w", namePath, err)
	}

	return obj, nil
}

// writeFileAtomic replaces path with data through a temporary file in the
// same directory.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}

	if err = tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}

	return nil
}
