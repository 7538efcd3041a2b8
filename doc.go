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

/*
Package derive provides derived structural behavior for Go value types:
equality, hashing, and dual-format string rendering, computed from a
struct's fields in declaration order.

It plays the role a derive macro plays in other languages. A value type
gains four operations without writing any of them by hand:

  - Equal: structural, field-by-field equality
  - Hash: a deterministic 64-bit hash such that equal values hash equal
  - Display: the short form "TypeName(v1, v2)"
  - Debug: the verbose form "TypeName { field_1: v1, field_2: v2 }"

# Quick Start

Use the package-level functions backed by the default Deriver:

	package main

	import (
		"fmt"

		"github.com/structkit/derive"
	)

	type User struct {
		Name string
		Age  int32
	}

	func main() {
		a := User{Name: "ada", Age: 36}
		b := User{Name: "ada", Age: 36}

		fmt.Println(derive.Equal(a, b))  // true
		fmt.Println(derive.Hash(a))     // deterministic uint64
		fmt.Println(derive.Display(a))  // User(ada, 36)
		fmt.Println(derive.Debug(a))    // User { name: "ada", age: 36 }
	}

Call Register up front to surface unsupported field types as errors
instead of panics:

	if err := derive.Register(User{}); err != nil {
		panic(err)
	}

# Generated methods

The derive command (cmd/derive) emits explicit per-type methods for
structs marked with a "derive:gen" comment, producing the same four
operations as compiled code with no reflection on the hot path:

	//go:generate derive -file user.go

	// derive:gen
	type User struct {
		Name string
		Age  int32
	}

Types carrying generated methods are picked up by the runtime through
the Equal method convention and the Hasher, Debugger, and fmt.Stringer
interfaces, so the reflection path and the generated path agree.

# Rendering rules

Display renders values raw: strings appear without quotes or escaping.
Debug renders field names in snake_case and strings with strconv.Quote,
so quotes and backslashes inside a value are backslash-escaped.
*/
package derive
