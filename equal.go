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
)

var boolType = reflect.TypeOf(false)

// Equal reports whether a and b are structurally equal. Values of
// different dynamic types are never equal. Struct fields are compared
// in declaration order; pointers, interfaces, slices, arrays, and maps
// are followed. The relation is reflexive, symmetric, and transitive
// (floats use ==, so a NaN field makes a value unequal to itself).
func (d *Deriver) Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	return d.equalValue(va, vb, d.maxDepth)
}

func (d *Deriver) equalValue(a, b reflect.Value, depth int) bool {
	if depth <= 0 {
		panic(fmt.Errorf("%w: comparing %s", ErrDepthLimit, a.Type().String()))
	}

	// A typed Equal method (usually generated) wins over the walk.
	if eq, ok := callTypedEqual(a, b); ok {
		return eq
	}

	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()
	case reflect.String:
		return a.String() == b.String()
	case reflect.Struct:
		info := d.mustTypeInfo(a.Type())
		for _, field := range info.Fields {
			if !d.equalValue(a.Field(field.Index), b.Field(field.Index), depth-1) {
				return false
			}
		}
		return true
	case reflect.Ptr, reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		if ea.Type() != eb.Type() {
			return false // interfaces holding different dynamic types
		}
		return d.equalValue(ea, eb, depth-1)
	case reflect.Slice, reflect.Array:
		if a.Kind() == reflect.Slice {
			if a.IsNil() != b.IsNil() {
				return false
			}
		}
		if a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !d.equalValue(a.Index(i), b.Index(i), depth-1) {
				return false
			}
		}
		return true
	case reflect.Map:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() {
				return false
			}
			if !d.equalValue(iter.Value(), bv, depth-1) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Errorf("%w: %s", ErrUnsupportedType, a.Type().String()))
	}
}

// callTypedEqual invokes a's Equal method when it has the conventional
// signature func (v T) Equal(other T) bool. Only addressable-free value
// receivers are considered; anything else falls through to the walk.
func callTypedEqual(a, b reflect.Value) (eq, ok bool) {
	if a.Kind() != reflect.Struct {
		return false, false
	}
	m := a.MethodByName("Equal")
	if !m.IsValid() {
		return false, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 {
		return false, false
	}
	if mt.In(0) != a.Type() || mt.Out(0) != boolType {
		return false, false
	}
	out := m.Call([]reflect.Value{b})
	return out[0].Bool(), true
}
