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

// Package record holds a comparable, hashable, dual-format-printable
// wrapper around a single string value. Its Equal, Hash, String, and
// DebugString methods are generated by the derive command.
package record

//go:generate derive -file record.go

// Record wraps one immutable string value. Two Records are equal iff
// their values are equal; equal Records hash equal, so a Record works
// as a key in hash-based containers. The short form renders as
// "Record(<value>)" and the debug form as `Record { val: "<value>" }`.
//
// derive:gen
type Record struct {
	Val string
}

// New returns a Record holding val verbatim.
func New(val string) Record {
	return Record{Val: val}
}
