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
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// fieldInfo stores field metadata computed entirely at init time.
type fieldInfo struct {
	Name      string // original Go field name
	SnakeName string // snake_case name used by the Debug form
	Index     int    // field index in the struct definition
	Type      reflect.Type
}

// typeInfo holds the derived view of a struct type: its fields in
// declaration order, minus unexported and tag-skipped ones.
type typeInfo struct {
	Name   string
	Type   reflect.Type
	Fields []fieldInfo
}

// Register performs eager initialization of the metadata for sample's
// type. This should be called at startup to surface unsupported field
// types as errors; the derived operations themselves initialize lazily
// and panic on the same conditions.
func (d *Deriver) Register(sample any) error {
	t := reflect.TypeOf(sample)
	if t == nil {
		return ErrNotStruct
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s", ErrNotStruct, t.String())
	}
	_, err := d.typeInfoOf(t)
	return err
}

// typeInfoOf returns cached metadata for t, building it on first use.
func (d *Deriver) typeInfoOf(t reflect.Type) (*typeInfo, error) {
	if cached, ok := d.infos.Load(t); ok {
		return cached.(*typeInfo), nil
	}
	info, err := d.buildTypeInfo(t)
	if err != nil {
		return nil, err
	}
	actual, _ := d.infos.LoadOrStore(t, info)
	return actual.(*typeInfo), nil
}

// mustTypeInfo is typeInfoOf for the lazy paths, which have no error
// return. Register first to get errors instead.
func (d *Deriver) mustTypeInfo(t reflect.Type) *typeInfo {
	info, err := d.typeInfoOf(t)
	if err != nil {
		panic(fmt.Errorf("failed to derive metadata for %s: %w", t.String(), err))
	}
	return info
}

func (d *Deriver) buildTypeInfo(t reflect.Type) (*typeInfo, error) {
	info := &typeInfo{
		Name: t.Name(), // empty for anonymous struct types
		Type: t,
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // skip unexported fields
		}
		if tag, ok := field.Tag.Lookup(d.tagKey); ok {
			if strings.TrimSpace(tag) == "-" {
				continue
			}
		}
		if err := validateFieldType(field.Type, d.maxDepth); err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t.Name(), field.Name, err)
		}
		info.Fields = append(info.Fields, fieldInfo{
			Name:      field.Name,
			SnakeName: toSnakeCase(field.Name),
			Index:     i,
			Type:      field.Type,
		})
	}
	return info, nil
}

// validateFieldType rejects kinds no derived operation can handle.
// Struct fields are not validated recursively here; nested structs get
// their own typeInfo (and validation) when first visited.
func validateFieldType(t reflect.Type, depth int) error {
	if depth <= 0 {
		return ErrDepthLimit
	}
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, t.String())
	case reflect.Ptr, reflect.Slice, reflect.Array:
		return validateFieldType(t.Elem(), depth-1)
	case reflect.Map:
		if err := validateFieldType(t.Key(), depth-1); err != nil {
			return err
		}
		return validateFieldType(t.Elem(), depth-1)
	default:
		return nil
	}
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
