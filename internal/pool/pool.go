// Copyright 2025 The Go A2A Authors.
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
//
// SPDX-License-Identifier: Apache-2.0

// Package pool provides strongly-typed object pooling for the encoders.
package pool

import (
	"bytes"
	"sync"
)

// maxPooledBufferSize bounds the buffers returned to Bytes. Larger buffers are
// dropped so that one oversized document does not pin its memory.
const maxPooledBufferSize = 64 << 10

// Pool is a generics wrapper around [sync.Pool].
type Pool[T any] struct {
	p    sync.Pool
	keep func(T) bool
}

// Resetter is implemented by pooled values that must be cleared before reuse.
type Resetter interface {
	Reset()
}

// Option configures a [Pool].
type Option[T any] func(*Pool[T])

// WithKeep makes Put discard values for which keep reports false.
func WithKeep[T any](keep func(T) bool) Option[T] {
	return func(p *Pool[T]) { p.keep = keep }
}

// New returns a new [Pool] for T, and will use fn to construct new T's when the pool is empty.
func New[T any](fn func() T, opts ...Option[T]) *Pool[T] {
	p := &Pool[T]{
		p: sync.Pool{
			New: func() any {
				return fn()
			},
		},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.p.Get().(T)
}

// Put resets x and returns it into the pool.
func (p *Pool[T]) Put(x T) {
	if p.keep != nil && !p.keep(x) {
		return
	}
	if r, ok := any(x).(Resetter); ok {
		r.Reset()
	}
	p.p.Put(x)
}

// Bytes pools the [*bytes.Buffer] used to assemble encoded documents.
var Bytes = New(
	func() *bytes.Buffer { return new(bytes.Buffer) },
	WithKeep(func(b *bytes.Buffer) bool { return b.Cap() <= maxPooledBufferSize }),
)
