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
	"sort"
	"strings"
)

// generateCompileGuard generates compile-time checks to ensure struct
// definitions haven't changed since code generation. If a struct is
// modified, users must re-run go generate or compilation will fail.
func generateCompileGuard(structs []StructInfo) string {
	if len(structs) == 0 {
		return ""
	}

	var buf bytes.Buffer

	buf.WriteString("\n// Compile-time guards: These ensure struct definitions haven't changed\n")
	buf.WriteString("// since code generation. If you modify structs, re-run go generate.\n\n")

	for _, structInfo := range structs {
		generateStructGuard(&buf, structInfo)
	}

	return buf.String()
}

func generateStructGuard(buf *bytes.Buffer, structInfo StructInfo) {
	typeName := structInfo.Name
	expectedTypeName := fmt.Sprintf("_%s_expected", typeName)

	// Generate the snapshot struct
	buf.WriteString(fmt.Sprintf("// Snapshot of %s's derived fields at generation time.\n", typeName))
	buf.WriteString(fmt.Sprintf("type %s struct {\n", expectedTypeName))

	// Sort fields by their original index to match the struct definition
	originalFields := make([]*FieldInfo, len(structInfo.Fields))
	copy(originalFields, structInfo.Fields)
	sort.Slice(originalFields, func(i, j int) bool {
		return originalFields[i].Index < originalFields[j].Index
	})

	for _, field := range originalFields {
		buf.WriteString(fmt.Sprintf("\t%s %s\n", field.GoName, formatGoType(field.Type)))
	}

	buf.WriteString("}\n\n")

	// Generate the compile-time check with a pointed error message
	buf.WriteString(fmt.Sprintf("// Compile-time check: this conversion is legal only if %s's underlying type\n", typeName))
	buf.WriteString(fmt.Sprintf("// is identical to %s (names, order, types).\n", expectedTypeName))
	buf.WriteString("//\n")
	buf.WriteString(fmt.Sprintf("// If compilation fails here, it means you've modified the %s struct but haven't\n", typeName))
	buf.WriteString("// regenerated the code. Please run: go generate\n")
	buf.WriteString("//\n")
	buf.WriteString(fmt.Sprintf("// If go generate also fails, delete this file first: rm %s_derive_gen.go\n", strings.ToLower(typeName)))
	buf.WriteString("// Then run: go generate\n")
	buf.WriteString(fmt.Sprintf("var _ = func(x %s) {\n", typeName))
	buf.WriteString(fmt.Sprintf("\t// ERROR: %s struct has changed! Run 'go generate' to fix this.\n", typeName))
	buf.WriteString(fmt.Sprintf("\t_ = %s(x)\n", expectedTypeName))
	buf.WriteString("}\n\n")
}
