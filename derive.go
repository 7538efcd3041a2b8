// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package derive

import (
	"errors"
	"sync"
)

// ============================================================================
// Errors
// ============================================================================

// ErrNotStruct indicates a value whose underlying type is not a struct
// was passed to Register.
var ErrNotStruct = errors.New("derive: value is not a struct")

// ErrUnsupportedType indicates a field type that no derived operation
// can handle (chan, func, unsafe.Pointer).
var ErrUnsupportedType = errors.New("derive: unsupported field type")

// ErrDepthLimit indicates the configured recursion depth was exceeded,
// usually because of a cyclic value.
var ErrDepthLimit = errors.New("derive: depth limit exceeded")

// ============================================================================
// Interfaces honored before reflection
// ============================================================================

// Hasher is implemented by types that carry their own hash, typically
// through generated code.
type Hasher interface {
	Hash() uint64
}

// Debugger is implemented by types that render their own Debug form.
type Debugger interface {
	DebugString() string
}

// Types may also implement fmt.Stringer for the Display form and the
// typed equality convention
//
//	func (v T) Equal(other T) bool
//
// which the runtime detects reflectively.

// ============================================================================
// Config
// ============================================================================

const defaultTagKey = "derive"

const defaultMaxDepth = 64

// Option configures a Deriver.
type Option func(*Deriver)

// WithTagKey sets the struct tag key consulted for field directives.
// The default is "derive"; a field tagged `derive:"-"` is skipped.
func WithTagKey(key string) Option {
	return func(d *Deriver) {
		d.tagKey = key
	}
}

// WithMaxDepth sets the maximum recursion depth for derived operations.
func WithMaxDepth(depth int) Option {
	return func(d *Deriver) {
		d.maxDepth = depth
	}
}

// ============================================================================
// Deriver
// ============================================================================

// Deriver computes derived operations for struct types. It caches field
// metadata per type, so the reflect walk over a type's definition
// happens once. A Deriver is safe for concurrent use.
type Deriver struct {
	tagKey   string
	maxDepth int

	infos sync.Map // reflect.Type -> *typeInfo
}

// New creates a Deriver with the given options applied.
func New(opts ...Option) *Deriver {
	d := &Deriver{
		tagKey:   defaultTagKey,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDeriver = New()

// Default returns the process-wide Deriver used by the package-level
// functions and by generated init registrations.
func Default() *Deriver {
	return defaultDeriver
}

// ============================================================================
// Package-level convenience API (default Deriver)
// ============================================================================

// Register eagerly builds metadata for sample's type on the default
// Deriver. See Deriver.Register.
func Register(sample any) error {
	return defaultDeriver.Register(sample)
}

// MustRegister is Register panicking on error. Generated code calls it
// from init.
func MustRegister(sample any) {
	if err := defaultDeriver.Register(sample); err != nil {
		panic(err)
	}
}

// Equal reports structural equality of a and b using the default
// Deriver.
func Equal(a, b any) bool {
	return defaultDeriver.Equal(a, b)
}

// Hash returns the derived hash of v using the default Deriver.
func Hash(v any) uint64 {
	return defaultDeriver.Hash(v)
}

// Display returns the short rendering of v using the default Deriver.
func Display(v any) string {
	return defaultDeriver.Display(v)
}

// Debug returns the verbose rendering of v using the default Deriver.
func Debug(v any) string {
	return defaultDeriver.Debug(v)
}
