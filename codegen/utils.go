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
	"fmt"
	"go/types"
	"unicode"
)

// derivePkgPath is the import path generated files pull the runtime
// helpers from.
const derivePkgPath = "github.com/structkit/derive"

// FieldInfo contains metadata about a struct field.
type FieldInfo struct {
	GoName    string     // original Go field name
	SnakeName string     // snake_case field name used by the Debug form
	Type      types.Type // Go type information
	Index     int        // original field index in struct
	Basic     bool       // whether the field is a basic kind with inline emission
	BasicKind types.BasicKind
}

// StructInfo contains metadata about a struct to generate code for.
type StructInfo struct {
	Name   string
	Fields []*FieldInfo
}

// toSnakeCase converts CamelCase to snake_case.
func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

// analyzeField extracts metadata for a single struct field. Returns
// nil for fields no derived operation can handle.
func analyzeField(field *types.Var, index int) (*FieldInfo, error) {
	if !isSupportedFieldType(field.Type()) {
		return nil, fmt.Errorf("field %s has unsupported type %s", field.Name(), field.Type().String())
	}

	info := &FieldInfo{
		GoName:    field.Name(),
		SnakeName: toSnakeCase(field.Name()),
		Type:      field.Type(),
		Index:     index,
	}
	if basic, ok := field.Type().Underlying().(*types.Basic); ok {
		info.Basic = true
		info.BasicKind = basic.Kind()
	}
	return info, nil
}

// isSupportedFieldType checks if a field type is supported.
func isSupportedFieldType(t types.Type) bool {
	switch type_ := t.Underlying().(type) {
	case *types.Basic:
		switch type_.Kind() {
		case types.UnsafePointer, types.Invalid:
			return false
		}
		return true
	case *types.Chan, *types.Signature:
		return false
	case *types.Pointer:
		return isSupportedFieldType(type_.Elem())
	case *types.Slice:
		return isSupportedFieldType(type_.Elem())
	case *types.Array:
		return isSupportedFieldType(type_.Elem())
	case *types.Map:
		return isSupportedFieldType(type_.Key()) && isSupportedFieldType(type_.Elem())
	default:
		return true
	}
}

// getStructNames returns the names of the given structs for logging.
func getStructNames(structs []*StructInfo) []string {
	names := make([]string, len(structs))
	for i, s := range structs {
		names[i] = s.Name
	}
	return names
}

// formatGoType converts a Go type to its string representation.
func formatGoType(t types.Type) string {
	switch type_ := t.(type) {
	case *types.Alias:
		// Handle alias types like 'any' (alias for interface{})
		if type_.Obj().Name() == "any" {
			return "any"
		}
		if type_.Obj().Pkg() == nil {
			return type_.Obj().Name()
		}
		return formatGoType(types.Unalias(t))
	case *types.Basic:
		return type_.Name()
	case *types.Pointer:
		return "*" + formatGoType(type_.Elem())
	case *types.Array:
		return fmt.Sprintf("[%d]%s", type_.Len(), formatGoType(type_.Elem()))
	case *types.Slice:
		return "[]" + formatGoType(type_.Elem())
	case *types.Map:
		return fmt.Sprintf("map[%s]%s", formatGoType(type_.Key()), formatGoType(type_.Elem()))
	case *types.Named:
		obj := type_.Obj()
		if obj.Pkg() == nil {
			return obj.Name()
		}
		return obj.Name()
	case *types.Interface:
		if type_.Empty() {
			return "any"
		}
		return t.String()
	default:
		return t.String()
	}
}
