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

// Package merge applies waypoint updates to persisted containers.
package merge

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"m4o.io/gpstools"
	"m4o.io/gpstools/geojson"
	"m4o.io/gpstools/internal/metrics"
	"m4o.io/gpstools/model"
	"m4o.io/gpstools/store"
)

// Engine runs the load, modify and store cycle of waypoint updates. Updates
// of the same container are serialized.
type Engine struct {
	store store.Store
	codec *gpstools.Codec
	locks *keyedMutex
	newID func() uuid.UUID
}

// NewEngine returns an engine working on the containers of s.
func NewEngine(s store.Store, codec *gpstools.Codec) *Engine {
	return &Engine{
		store: s,
		codec: codec,
		locks: newKeyedMutex(),
		newID: uuid.New,
	}
}

// Lock serializes other writers of a container with ApplyUpdate. The
// returned func releases the lock.
func (e *Engine) Lock(id uuid.UUID) func() {
	return e.locks.Lock(id)
}

// ApplyUpdate replaces or merges the waypoints of the container stored under
// id and returns the resulting waypoints.
func (e *Engine) ApplyUpdate(
	ctx context.Context,
	id uuid.UUID,
	update geojson.Update,
	merge bool,
) (fc geojson.FeatureCollection, err error) {
	defer func() { metrics.RecordMerge(merge, err) }()

	if len(update.Candidates) == 0 {
		return fc, fmt.Errorf("update without waypoints: %w", model.ErrInvalidArgument)
	}

	unlock := e.locks.Lock(id)
	defer unlock()

	obj, err := e.store.Get(ctx, id)
	if err != nil {
		return fc, err
	}

	container, err := e.codec.Unmarshal(obj.Data)
	if err != nil {
		return fc, fmt.Errorf("container %s: %w", id, err)
	}

	wayPoints, err := Apply(container.WayPoints, update, merge, e.newID)
	if err != nil {
		return fc, err
	}

	container.WayPoints = wayPoints

	data, err := e.codec.Marshal(container)
	if err != nil {
		return fc, fmt.Errorf("container %s: %w", id, err)
	}

	if err = e.store.Put(ctx, id, store.Object{Filename: obj.Filename, Data: data}); err != nil {
		return fc, err
	}

	return geojson.FromWayPoints(wayPoints), nil
}

// Apply computes the waypoints that result from an update of existing.
//
// Without merge the result is exactly the candidates, in order. With merge a
// candidate whose id matches an existing waypoint replaces it in place,
// keeping its time and overlaying its extensions; every other candidate is
// appended. Unmatched ids are additions, never errors.
func Apply(existing []model.WayPoint, update geojson.Update, merge bool, newID func() uuid.UUID) ([]model.WayPoint, error) {
	if !merge {
		return replace(update, newID)
	}

	merged := &model.GpsContainer{
		WayPoints: make([]model.WayPoint, len(existing), len(existing)+len(update.Candidates)),
	}
	copy(merged.WayPoints, existing)

	for i := range update.Candidates {
		c := &update.Candidates[i]

		idx := -1
		if c.ID != nil {
			idx = merged.WayPointIndex(*c.ID)
		}

		if idx < 0 {
			merged.WayPoints = append(merged.WayPoints, c.WayPoint(idOrNew(c, newID)))

			continue
		}

		old := merged.WayPoints[idx]

		w := c.WayPoint(old.ID)
		w.Time = old.Time
		w.Extensions = old.Extensions.Union(c.Extensions)

		if w.Elevation == nil {
			w.Elevation = old.Elevation
		}

		merged.WayPoints[idx] = w
	}

	return merged.WayPoints, nil
}

func replace(update geojson.Update, newID func() uuid.UUID) ([]model.WayPoint, error) {
	result := make([]model.WayPoint, 0, len(update.Candidates))
	seen := make(map[uuid.UUID]struct{}, len(update.Candidates))

	for i := range update.Candidates {
		c := &update.Candidates[i]

		id := idOrNew(c, newID)
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate waypoint id %s: %w", id, model.ErrInvalidArgument)
		}

		seen[id] = struct{}{}
		result = append(result, c.WayPoint(id))
	}

	return result, nil
}

func idOrNew(c *geojson.Candidate, newID func() uuid.UUID) uuid.UUID {
	if c.ID != nil {
		return *c.ID
	}

	return newID()
}
