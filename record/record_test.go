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

package record

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structkit/derive"
)

func TestNewStoresValueVerbatim(t *testing.T) {
	for _, s := range []string{"", "yo", "yoyo", `he said "hi"`, "a\\b", "\n\t"} {
		assert.Equal(t, s, New(s).Val, "constructor must store the string verbatim")
	}
}

func TestString(t *testing.T) {
	m := New("yo")
	assert.Equal(t, "Record(yo)", m.String(), "short form must render the raw value")
	assert.Equal(t, "Record(yo)", fmt.Sprint(m), "fmt must pick up the Stringer")
	assert.Equal(t, "Record(yo)", derive.Display(m), "reflection path must honor the generated String")

	// The short form never escapes.
	assert.Equal(t, `Record(he said "hi")`, New(`he said "hi"`).String())
}

func TestDebugString(t *testing.T) {
	m := New("yo")
	assert.Equal(t, `Record { val: "yo" }`, m.DebugString(), "debug form must quote the value")
	assert.Equal(t, `Record { val: "yo" }`, derive.Debug(m), "reflection path must honor the generated DebugString")

	// Quotes and backslashes inside the value are backslash-escaped.
	assert.Equal(t, `Record { val: "he said \"hi\"" }`, New(`he said "hi"`).DebugString())
	assert.Equal(t, `Record { val: "a\\b" }`, New(`a\b`).DebugString())
}

func TestEqual(t *testing.T) {
	m := New("yo")
	assert.True(t, m.Equal(New("yo")), "equal values must compare equal")
	assert.False(t, m.Equal(New("yoyo")), "different values must compare unequal")

	// Reflexive, symmetric, transitive.
	a, b, c := New("x"), New("x"), New("x")
	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b) && b.Equal(a))
	assert.True(t, a.Equal(b) && b.Equal(c) && a.Equal(c))

	assert.True(t, derive.Equal(m, New("yo")), "reflection path must agree with the generated Equal")
	assert.False(t, derive.Equal(m, New("yoyo")))
}

func TestHash(t *testing.T) {
	m := New("yo")
	require.Equal(t, m.Hash(), m.Hash(), "hash must be deterministic")
	require.Equal(t, m.Hash(), New("yo").Hash(), "equal values must hash equal across constructions")
	assert.NotEqual(t, m.Hash(), New("yoyo").Hash(), "distinct values should not collide here")

	assert.Equal(t, m.Hash(), derive.Hash(m), "reflection path must return the generated hash")
}

func TestRecordAsMapKey(t *testing.T) {
	// Records are comparable, so a plain Go map works.
	d := map[Record]string{}
	m := New("m")
	d[m] = "m"
	_, ok := d[New("m")]
	assert.True(t, ok, "a freshly constructed equal key must be found")

	// The hash-keyed map exercises the Hash/Equal contract explicitly.
	hm := derive.NewMap[Record, string]()
	hm.Put(New("yo"), "m")
	assert.True(t, hm.Contains(New("yo")), "equal-by-value keys are found regardless of distinct construction")
	got, ok := hm.Get(New("yo"))
	require.True(t, ok)
	assert.Equal(t, "m", got)
	assert.False(t, hm.Contains(New("yoyo")))
}
