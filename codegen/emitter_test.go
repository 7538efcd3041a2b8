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

package codegen

import (
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustField(t *testing.T, name string, typ types.Type, index int) *FieldInfo {
	t.Helper()
	info, err := analyzeField(types.NewVar(token.NoPos, nil, name, typ), index)
	require.NoError(t, err, "analyzing field %s", name)
	return info
}

func recordStruct(t *testing.T) *StructInfo {
	t.Helper()
	return &StructInfo{
		Name:   "Record",
		Fields: []*FieldInfo{mustField(t, "Val", types.Typ[types.String], 0)},
	}
}

func TestGenerateFileContentsForRecord(t *testing.T) {
	code, err := generateFileContents("record", "record.go", []*StructInfo{recordStruct(t)})
	require.NoError(t, err, "generation should produce formatted code")
	src := string(code)

	assert.Contains(t, src, "// Code generated by derivegen. DO NOT EDIT.")
	assert.Contains(t, src, "package record")
	assert.Contains(t, src, `derive.MustRegister(Record{})`)

	// The four derived methods.
	assert.Contains(t, src, "func (v Record) Equal(o Record) bool")
	assert.Contains(t, src, "func (v Record) Hash() uint64")
	assert.Contains(t, src, "func (v Record) String() string")
	assert.Contains(t, src, "func (v Record) DebugString() string")

	// Field-level emission.
	assert.Contains(t, src, "if v.Val != o.Val")
	assert.Contains(t, src, "w.WriteString(string(v.Val))")
	assert.Contains(t, src, `b.WriteString("Record(")`)
	assert.Contains(t, src, `b.WriteString("Record { ")`)
	assert.Contains(t, src, `b.WriteString("val: ")`)
	assert.Contains(t, src, "strconv.Quote(string(v.Val))")

	// Compile-time guard.
	assert.Contains(t, src, "type _Record_expected struct")
	assert.Contains(t, src, "_ = _Record_expected(x)")
}

func TestGenerateMixedFieldKinds(t *testing.T) {
	s := &StructInfo{
		Name: "Sample",
		Fields: []*FieldInfo{
			mustField(t, "Name", types.Typ[types.String], 0),
			mustField(t, "Age", types.Typ[types.Int32], 1),
			mustField(t, "Score", types.Typ[types.Float64], 2),
			mustField(t, "Active", types.Typ[types.Bool], 3),
			mustField(t, "Tags", types.NewSlice(types.Typ[types.String]), 4),
		},
	}
	code, err := generateFileContents("sample", "sample.go", []*StructInfo{s})
	require.NoError(t, err)
	src := string(code)

	assert.Contains(t, src, "w.WriteInt64(int64(v.Age))")
	assert.Contains(t, src, "w.WriteFloat64(float64(v.Score))")
	assert.Contains(t, src, "w.WriteBool(bool(v.Active))")
	assert.Contains(t, src, "w.WriteValueHash(derive.Hash(v.Tags))", "non-basic fields delegate to the runtime")
	assert.Contains(t, src, "strconv.FormatInt(int64(v.Age), 10)")
	assert.Contains(t, src, "strconv.FormatFloat(float64(v.Score), 'g', -1, 64)")
	assert.Contains(t, src, "!derive.Equal(v.Tags, o.Tags)")

	// Debug labels are snake_case with comma separators after the first.
	assert.Contains(t, src, `b.WriteString(", score: ")`)
}

func TestGeneratedCodeIsFormatted(t *testing.T) {
	code, err := generateFileContents("record", "record.go", []*StructInfo{recordStruct(t)})
	require.NoError(t, err)

	// format.Source already ran; spot-check there are no raw tab runs
	// before method comments and the file ends with a newline.
	src := string(code)
	assert.True(t, strings.HasSuffix(src, "\n"))
	assert.False(t, strings.Contains(src, "\n\n\n\n"), "no large blank gaps")
}

func TestStructNeedsStrconv(t *testing.T) {
	withBasic := recordStruct(t)
	assert.True(t, structNeedsStrconv(withBasic))

	onlyDelegated := &StructInfo{
		Name: "Wrap",
		Fields: []*FieldInfo{
			mustField(t, "Items", types.NewSlice(types.Typ[types.Int]), 0),
		},
	}
	assert.False(t, structNeedsStrconv(onlyDelegated))
}

func TestGenerateEmptyStruct(t *testing.T) {
	s := &StructInfo{Name: "Unit"}
	code, err := generateFileContents("unit", "unit.go", []*StructInfo{s})
	require.NoError(t, err)
	src := string(code)
	assert.Contains(t, src, `b.WriteString("Unit(")`)
	assert.Contains(t, src, `return "Unit {}"`)
}
