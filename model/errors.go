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

package model

import "errors"

var (
	// ErrInvalidFormat is returned for malformed documents and unrecognized
	// enumeration codes.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidArgument is returned for malformed coordinates and for
	// fields a target format requires but the container does not carry.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when no container is stored under an id.
	ErrNotFound = errors.New("not found")
)
