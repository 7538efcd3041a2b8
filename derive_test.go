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

type user struct {
	Name string
	Age  int32
}

type withSecret struct {
	Name   string
	Secret string `derive:"-"`
}

type withChan struct {
	C chan int
}

func TestRegister(t *testing.T) {
	d := New()
	require.NoError(t, d.Register(user{}), "plain struct must register")
	require.NoError(t, d.Register(&user{}), "pointer samples are dereferenced")

	err := d.Register(42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotStruct)

	err = d.Register(nil)
	assert.ErrorIs(t, err, ErrNotStruct)

	err = d.Register(withChan{})
	require.Error(t, err, "chan fields have no derived behavior")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestTagSkip(t *testing.T) {
	d := New()
	a := withSecret{Name: "ada", Secret: "s1"}
	b := withSecret{Name: "ada", Secret: "s2"}

	assert.True(t, d.Equal(a, b), "tag-skipped fields must not affect equality")
	assert.Equal(t, d.Hash(a), d.Hash(b), "tag-skipped fields must not affect the hash")
	assert.Equal(t, `withSecret { name: "ada" }`, d.Debug(a), "tag-skipped fields must not render")
	assert.Equal(t, "withSecret(ada)", d.Display(a))
}

func TestWithTagKey(t *testing.T) {
	type doc struct {
		Title string
		Draft string `view:"-"`
	}
	d := New(WithTagKey("view"))
	a := doc{Title: "t", Draft: "x"}
	b := doc{Title: "t", Draft: "y"}
	assert.True(t, d.Equal(a, b))

	// The default key ignores the foreign tag.
	assert.False(t, New().Equal(a, b))
}

func TestUnexportedFieldsAreSkipped(t *testing.T) {
	type timestamped struct {
		Name string
		mono int64
	}
	d := New()
	a := timestamped{Name: "a", mono: 1}
	b := timestamped{Name: "a", mono: 2}
	assert.True(t, d.Equal(a, b), "unexported fields must not affect equality")
	assert.Equal(t, d.Hash(a), d.Hash(b))
	assert.Equal(t, `timestamped { name: "a" }`, d.Debug(a))
}

func TestLazyPathPanicsWhereRegisterErrors(t *testing.T) {
	d := New()
	assert.Panics(t, func() {
		d.Hash(withChan{})
	}, "lazy metadata build must panic on types Register rejects")
}

func TestDeriversAgree(t *testing.T) {
	// The hash is a pure function of the value, not of Deriver state.
	a := New()
	b := New()
	v := user{Name: "ada", Age: 36}
	assert.Equal(t, a.Hash(v), b.Hash(v))
	assert.Equal(t, a.Display(v), b.Display(v))
	assert.Equal(t, a.Debug(v), b.Debug(v))
}
