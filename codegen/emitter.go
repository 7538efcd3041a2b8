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
	"bytes"
	"fmt"
	"go/types"
)

// generateStructMethods generates the four derived methods for a struct:
// Equal, Hash, String (Display form), and DebugString (Debug form).
func generateStructMethods(buf *bytes.Buffer, s *StructInfo) error {
	if err := generateEqual(buf, s); err != nil {
		return err
	}
	if err := generateHash(buf, s); err != nil {
		return err
	}
	if err := generateString(buf, s); err != nil {
		return err
	}
	return generateDebugString(buf, s)
}

// generateEqual generates the strongly-typed Equal method with no
// reflection on basic fields.
func generateEqual(buf *bytes.Buffer, s *StructInfo) error {
	fmt.Fprintf(buf, "// Equal reports whether v and o are structurally equal: true iff\n")
	fmt.Fprintf(buf, "// all fields compare equal in declaration order.\n")
	fmt.Fprintf(buf, "func (v %s) Equal(o %s) bool {\n", s.Name, s.Name)
	for _, field := range s.Fields {
		fmt.Fprintf(buf, "\t// Field: %s (%s)\n", field.GoName, field.Type.String())
		if field.Basic {
			fmt.Fprintf(buf, "\tif v.%s != o.%s {\n", field.GoName, field.GoName)
		} else {
			fmt.Fprintf(buf, "\tif !derive.Equal(v.%s, o.%s) {\n", field.GoName, field.GoName)
		}
		fmt.Fprintf(buf, "\t\treturn false\n")
		fmt.Fprintf(buf, "\t}\n")
	}
	fmt.Fprintf(buf, "\treturn true\n")
	fmt.Fprintf(buf, "}\n\n")
	return nil
}

// generateHash generates the Hash method. It writes through
// derive.HashWriter, the same encoder the reflection path uses, so the
// two paths produce identical values.
func generateHash(buf *bytes.Buffer, s *StructInfo) error {
	fmt.Fprintf(buf, "// Hash returns a deterministic hash of v's fields in declaration\n")
	fmt.Fprintf(buf, "// order. Equal values hash equal.\n")
	fmt.Fprintf(buf, "func (v %s) Hash() uint64 {\n", s.Name)
	fmt.Fprintf(buf, "\tw := derive.NewHashWriter()\n")
	for _, field := range s.Fields {
		fmt.Fprintf(buf, "\t// Field: %s (%s)\n", field.GoName, field.Type.String())
		if err := generateFieldHash(buf, field); err != nil {
			return err
		}
	}
	fmt.Fprintf(buf, "\treturn w.Sum64()\n")
	fmt.Fprintf(buf, "}\n\n")
	return nil
}

func generateFieldHash(buf *bytes.Buffer, field *FieldInfo) error {
	access := fmt.Sprintf("v.%s", field.GoName)
	if !field.Basic {
		fmt.Fprintf(buf, "\tw.WriteValueHash(derive.Hash(%s))\n", access)
		return nil
	}
	switch field.BasicKind {
	case types.Bool:
		fmt.Fprintf(buf, "\tw.WriteBool(bool(%s))\n", access)
	case types.Int, types.Int8, types.Int16, types.Int32, types.Int64:
		fmt.Fprintf(buf, "\tw.WriteInt64(int64(%s))\n", access)
	case types.Uint, types.Uint8, types.Uint16, types.Uint32, types.Uint64, types.Uintptr:
		fmt.Fprintf(buf, "\tw.WriteUint64(uint64(%s))\n", access)
	case types.Float32, types.Float64:
		fmt.Fprintf(buf, "\tw.WriteFloat64(float64(%s))\n", access)
	case types.Complex64, types.Complex128:
		fmt.Fprintf(buf, "\tw.WriteComplex128(complex128(%s))\n", access)
	case types.String:
		fmt.Fprintf(buf, "\tw.WriteString(string(%s))\n", access)
	default:
		return fmt.Errorf("unsupported basic kind for field %s", field.GoName)
	}
	return nil
}

// generateString generates the String method rendering the short form
// "TypeName(v1, v2)" with raw, unescaped values.
func generateString(buf *bytes.Buffer, s *StructInfo) error {
	fmt.Fprintf(buf, "// String renders the short form %q.\n", s.Name+"(...)")
	fmt.Fprintf(buf, "func (v %s) String() string {\n", s.Name)
	fmt.Fprintf(buf, "\tvar b strings.Builder\n")
	fmt.Fprintf(buf, "\tb.WriteString(%q)\n", s.Name+"(")
	for i, field := range s.Fields {
		fmt.Fprintf(buf, "\t// Field: %s (%s)\n", field.GoName, field.Type.String())
		if i > 0 {
			fmt.Fprintf(buf, "\tb.WriteString(\", \")\n")
		}
		expr, err := displayExpr(field)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "\tb.WriteString(%s)\n", expr)
	}
	fmt.Fprintf(buf, "\tb.WriteString(\")\")\n")
	fmt.Fprintf(buf, "\treturn b.String()\n")
	fmt.Fprintf(buf, "}\n\n")
	return nil
}

// generateDebugString generates the DebugString method rendering the
// verbose form "TypeName { field: value }" with snake_case field names
// and quote-escaped strings.
func generateDebugString(buf *bytes.Buffer, s *StructInfo) error {
	fmt.Fprintf(buf, "// DebugString renders the verbose form %q.\n", s.Name+" { ... }")
	fmt.Fprintf(buf, "func (v %s) DebugString() string {\n", s.Name)
	if len(s.Fields) == 0 {
		fmt.Fprintf(buf, "\treturn %q\n", s.Name+" {}")
		fmt.Fprintf(buf, "}\n\n")
		return nil
	}
	fmt.Fprintf(buf, "\tvar b strings.Builder\n")
	fmt.Fprintf(buf, "\tb.WriteString(%q)\n", s.Name+" { ")
	for i, field := range s.Fields {
		fmt.Fprintf(buf, "\t// Field: %s (%s)\n", field.GoName, field.Type.String())
		label := field.SnakeName + ": "
		if i > 0 {
			label = ", " + label
		}
		fmt.Fprintf(buf, "\tb.WriteString(%q)\n", label)
		expr, err := debugExpr(field)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "\tb.WriteString(%s)\n", expr)
	}
	fmt.Fprintf(buf, "\tb.WriteString(\" }\")\n")
	fmt.Fprintf(buf, "\treturn b.String()\n")
	fmt.Fprintf(buf, "}\n\n")
	return nil
}

// displayExpr returns the Go expression rendering a field for the
// short form: raw strings, decimal numbers.
func displayExpr(field *FieldInfo) (string, error) {
	access := fmt.Sprintf("v.%s", field.GoName)
	if !field.Basic {
		return fmt.Sprintf("derive.Display(%s)", access), nil
	}
	if field.BasicKind == types.String {
		return fmt.Sprintf("string(%s)", access), nil
	}
	return basicFormatExpr(field, access)
}

// debugExpr returns the Go expression rendering a field for the
// verbose form: strings go through strconv.Quote.
func debugExpr(field *FieldInfo) (string, error) {
	access := fmt.Sprintf("v.%s", field.GoName)
	if !field.Basic {
		return fmt.Sprintf("derive.Debug(%s)", access), nil
	}
	if field.BasicKind == types.String {
		return fmt.Sprintf("strconv.Quote(string(%s))", access), nil
	}
	return basicFormatExpr(field, access)
}

func basicFormatExpr(field *FieldInfo, access string) (string, error) {
	switch field.BasicKind {
	case types.Bool:
		return fmt.Sprintf("strconv.FormatBool(bool(%s))", access), nil
	case types.Int, types.Int8, types.Int16, types.Int32, types.Int64:
		return fmt.Sprintf("strconv.FormatInt(int64(%s), 10)", access), nil
	case types.Uint, types.Uint8, types.Uint16, types.Uint32, types.Uint64, types.Uintptr:
		return fmt.Sprintf("strconv.FormatUint(uint64(%s), 10)", access), nil
	case types.Float32:
		return fmt.Sprintf("strconv.FormatFloat(float64(%s), 'g', -1, 32)", access), nil
	case types.Float64:
		return fmt.Sprintf("strconv.FormatFloat(float64(%s), 'g', -1, 64)", access), nil
	case types.Complex64:
		return fmt.Sprintf("strconv.FormatComplex(complex128(%s), 'g', -1, 64)", access), nil
	case types.Complex128:
		return fmt.Sprintf("strconv.FormatComplex(complex128(%s), 'g', -1, 128)", access), nil
	default:
		return "", fmt.Errorf("unsupported basic kind for field %s", field.GoName)
	}
}

// structNeedsStrconv reports whether the generated code for s will
// reference strconv.
func structNeedsStrconv(s *StructInfo) bool {
	for _, field := range s.Fields {
		if field.Basic {
			return true
		}
	}
	return false
}
