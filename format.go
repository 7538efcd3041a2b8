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
	"sort"
	"strconv"
	"strings"
)

// Display returns the short rendering of v: "TypeName(v1, v2)" with
// field values in declaration order, strings raw and unescaped. Types
// implementing fmt.Stringer render through their own String method.
func (d *Deriver) Display(v any) string {
	if v == nil {
		return "nil"
	}
	var b strings.Builder
	d.displayValue(&b, reflect.ValueOf(v), d.maxDepth)
	return b.String()
}

// Debug returns the verbose rendering of v:
// "TypeName { field_1: v1, field_2: v2 }" with snake_case field names
// and strings rendered by strconv.Quote, so quotes and backslashes in
// the value are backslash-escaped. Types implementing Debugger render
// through their own DebugString method.
func (d *Deriver) Debug(v any) string {
	if v == nil {
		return "nil"
	}
	var b strings.Builder
	d.debugValue(&b, reflect.ValueOf(v), d.maxDepth)
	return b.String()
}

func (d *Deriver) displayValue(b *strings.Builder, v reflect.Value, depth int) {
	if depth <= 0 {
		panic(fmt.Errorf("%w: rendering %s", ErrDepthLimit, v.Type().String()))
	}
	if v.Kind() == reflect.Struct && v.Type().Implements(stringerType) {
		b.WriteString(v.Interface().(fmt.Stringer).String())
		return
	}

	switch v.Kind() {
	case reflect.String:
		b.WriteString(v.String())
	case reflect.Struct:
		info := d.mustTypeInfo(v.Type())
		b.WriteString(info.Name)
		b.WriteByte('(')
		for i, field := range info.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			d.displayValue(b, v.Field(field.Index), depth-1)
		}
		b.WriteByte(')')
	default:
		d.scalarValue(b, v, depth, d.displayValue)
	}
}

func (d *Deriver) debugValue(b *strings.Builder, v reflect.Value, depth int) {
	if depth <= 0 {
		panic(fmt.Errorf("%w: rendering %s", ErrDepthLimit, v.Type().String()))
	}
	if v.Kind() == reflect.Struct && v.Type().Implements(debuggerType) {
		b.WriteString(v.Interface().(Debugger).DebugString())
		return
	}

	switch v.Kind() {
	case reflect.String:
		b.WriteString(strconv.Quote(v.String()))
	case reflect.Struct:
		info := d.mustTypeInfo(v.Type())
		b.WriteString(info.Name)
		if len(info.Fields) == 0 {
			b.WriteString(" {}")
			return
		}
		b.WriteString(" { ")
		for i, field := range info.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(field.SnakeName)
			b.WriteString(": ")
			d.debugValue(b, v.Field(field.Index), depth-1)
		}
		b.WriteString(" }")
	default:
		d.scalarValue(b, v, depth, d.debugValue)
	}
}

// scalarValue renders the kinds shared by both forms; render recurses
// back into the calling form for nested values.
func (d *Deriver) scalarValue(b *strings.Builder, v reflect.Value, depth int, render func(*strings.Builder, reflect.Value, int)) {
	switch v.Kind() {
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32:
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 32))
	case reflect.Float64:
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Complex64:
		b.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 64))
	case reflect.Complex128:
		b.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 128))
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		render(b, v.Elem(), depth-1)
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			b.WriteString("nil")
			return
		}
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			render(b, v.Index(i), depth-1)
		}
		b.WriteByte(']')
	case reflect.Map:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		// Entries render sorted so the output is deterministic.
		entries := make([]string, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			var eb strings.Builder
			render(&eb, iter.Key(), depth-1)
			eb.WriteString(": ")
			render(&eb, iter.Value(), depth-1)
			entries = append(entries, eb.String())
		}
		sort.Strings(entries)
		b.WriteByte('{')
		b.WriteString(strings.Join(entries, ", "))
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%v", v.Interface())
	}
}

var (
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	debuggerType = reflect.TypeOf((*Debugger)(nil)).Elem()
)
