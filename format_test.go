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
)

func TestDisplay(t *testing.T) {
	d := New()

	assert.Equal(t, "user(ada, 36)", d.Display(user{Name: "ada", Age: 36}))
	assert.Equal(t, "address(london, e1)", d.Display(address{City: "london", Zip: "e1"}))

	// Raw, unescaped strings.
	assert.Equal(t, `user(he said "hi", 0)`, d.Display(user{Name: `he said "hi"`}))
}

func TestDisplayNested(t *testing.T) {
	type team struct {
		Lead    user
		Members []user
	}
	d := New()
	v := team{
		Lead:    user{Name: "ada", Age: 36},
		Members: []user{{Name: "grace", Age: 40}},
	}
	assert.Equal(t, "team(user(ada, 36), [user(grace, 40)])", d.Display(v))
}

func TestDebugForms(t *testing.T) {
	d := New()

	assert.Equal(t, `user { name: "ada", age: 36 }`, d.Debug(user{Name: "ada", Age: 36}))

	// snake_case field names.
	type httpRequest struct {
		RequestPath string
		StatusCode  int
	}
	assert.Equal(t,
		`httpRequest { request_path: "/x", status_code: 200 }`,
		d.Debug(httpRequest{RequestPath: "/x", StatusCode: 200}))
}

func TestDebugEscaping(t *testing.T) {
	d := New()
	assert.Equal(t, `user { name: "he said \"hi\"", age: 0 }`,
		d.Debug(user{Name: `he said "hi"`}))
	assert.Equal(t, `user { name: "a\\b", age: 0 }`,
		d.Debug(user{Name: `a\b`}))
	assert.Equal(t, `user { name: "line\nbreak", age: 0 }`,
		d.Debug(user{Name: "line\nbreak"}))
}

func TestDebugNested(t *testing.T) {
	type team struct {
		Lead    user
		Members []user
		Tags    map[string]int
	}
	d := New()
	v := team{
		Lead:    user{Name: "ada", Age: 36},
		Members: []user{{Name: "grace", Age: 40}},
		Tags:    map[string]int{"b": 2, "a": 1},
	}
	assert.Equal(t,
		`team { lead: user { name: "ada", age: 36 }, members: [user { name: "grace", age: 40 }], tags: {"a": 1, "b": 2} }`,
		d.Debug(v))
}

func TestRenderNilFields(t *testing.T) {
	type node struct {
		Name string
		Next *node
		Tags []string
	}
	d := New()
	v := node{Name: "root"}
	assert.Equal(t, "node(root, nil, nil)", d.Display(v))
	assert.Equal(t, `node { name: "root", next: nil, tags: nil }`, d.Debug(v))
}

func TestRenderTopLevelNil(t *testing.T) {
	d := New()
	assert.Equal(t, "nil", d.Display(nil))
	assert.Equal(t, "nil", d.Debug(nil))
}
