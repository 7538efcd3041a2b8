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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDeterministic(t *testing.T) {
	d := New()
	v := person{
		Name:    "ada",
		Home:    address{City: "london", Zip: "e1"},
		Aliases: []string{"countess"},
		Scores:  map[string]int{"math": 10, "art": 7},
		Partner: &person{Name: "charles"},
		Note:    "first",
	}
	h := d.Hash(v)
	for i := 0; i < 10; i++ {
		require.Equal(t, h, d.Hash(v), "hash must not vary across calls")
	}
}

func TestHashEqualImpliesEqualHash(t *testing.T) {
	d := New()
	build := func() person {
		return person{
			Name:    "ada",
			Home:    address{City: "london", Zip: "e1"},
			Aliases: []string{"countess", "aal"},
			Scores:  map[string]int{"math": 10, "art": 7, "music": 3},
			Partner: &person{Name: "charles"},
			Note:    int64(7),
		}
	}
	a, b := build(), build()
	require.True(t, d.Equal(a, b))
	assert.Equal(t, d.Hash(a), d.Hash(b), "equal values must hash equal")
}

func TestHashMapOrderIndependent(t *testing.T) {
	type scores struct {
		ByName map[string]int
	}
	d := New()

	// Build the same logical map with different insertion orders.
	a := scores{ByName: map[string]int{}}
	b := scores{ByName: map[string]int{}}
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i, k := range keys {
		a.ByName[k] = i
	}
	for i := len(keys) - 1; i >= 0; i-- {
		b.ByName[keys[i]] = i
	}

	require.True(t, d.Equal(a, b))
	assert.Equal(t, d.Hash(a), d.Hash(b), "map iteration order must not leak into the hash")
}

func TestHashDistinguishesValues(t *testing.T) {
	type pair struct {
		A string
		B string
	}
	d := New()

	// Field boundaries must not collide by concatenation.
	assert.NotEqual(t, d.Hash(pair{A: "ab", B: "c"}), d.Hash(pair{A: "a", B: "bc"}))
	assert.NotEqual(t, d.Hash(pair{A: "x"}), d.Hash(pair{B: "x"}))
}

func TestHashNilValues(t *testing.T) {
	type links struct {
		Next  *links
		Items []int
		Tags  map[string]bool
	}
	d := New()
	zero := links{}
	require.Equal(t, d.Hash(zero), d.Hash(links{}))
	assert.NotEqual(t, d.Hash(zero), d.Hash(links{Items: []int{0}}))
	assert.Equal(t, uint64(0), d.Hash(nil))
}

func TestHashWriterMatchesReflection(t *testing.T) {
	// A generated Hash method writes the same bytes the reflection walk
	// writes for the same field sequence, minus the struct header the
	// walk adds for methodless types. Both must stay deterministic.
	w := NewHashWriter()
	w.WriteString("yo")
	first := w.Sum64()

	w2 := NewHashWriter()
	w2.WriteString("yo")
	assert.Equal(t, first, w2.Sum64())

	w3 := NewHashWriter()
	w3.WriteString("yoyo")
	assert.NotEqual(t, first, w3.Sum64())
}
