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
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/spaolacci/murmur3"
)

// Kind tags keep the field encoding self-delimiting, so adjacent
// fields of different types cannot collide by concatenation.
const (
	tagNil byte = iota + 1
	tagBool
	tagInt
	tagUint
	tagFloat
	tagComplex
	tagString
	tagStruct
	tagSeq
	tagMap
	tagIface
	tagHashed
)

// HashWriter accumulates a little-endian encoding of field values and
// finishes it with murmur3. Generated Hash methods write through the
// same encoder as the reflection walk, so both paths agree byte for
// byte.
type HashWriter struct {
	buf []byte
}

// NewHashWriter returns an empty HashWriter.
func NewHashWriter() *HashWriter {
	return &HashWriter{buf: make([]byte, 0, 64)}
}

// WriteBool appends a bool contribution.
func (w *HashWriter) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, tagBool, 1)
	} else {
		w.buf = append(w.buf, tagBool, 0)
	}
}

// WriteInt64 appends a signed integer contribution. All signed widths
// funnel through int64 so int32(7) and int64(7) fields contribute the
// same bytes.
func (w *HashWriter) WriteInt64(v int64) {
	w.buf = append(w.buf, tagInt)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v))
}

// WriteUint64 appends an unsigned integer contribution.
func (w *HashWriter) WriteUint64(v uint64) {
	w.buf = append(w.buf, tagUint)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// WriteFloat64 appends a float contribution. Negative zero is
// normalized to positive zero so that values comparing equal under ==
// contribute identical bytes.
func (w *HashWriter) WriteFloat64(v float64) {
	if v == 0 {
		v = 0
	}
	w.buf = append(w.buf, tagFloat)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteComplex128 appends a complex contribution, both parts
// normalized like WriteFloat64.
func (w *HashWriter) WriteComplex128(v complex128) {
	re, im := real(v), imag(v)
	if re == 0 {
		re = 0
	}
	if im == 0 {
		im = 0
	}
	w.buf = append(w.buf, tagComplex)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(re))
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(im))
}

// WriteString appends a length-prefixed string contribution.
func (w *HashWriter) WriteString(v string) {
	w.buf = append(w.buf, tagString)
	w.buf = binary.AppendUvarint(w.buf, uint64(len(v)))
	w.buf = append(w.buf, v...)
}

// WriteValueHash appends a pre-computed hash of a nested value.
// Generated code uses this for fields whose types carry their own Hash
// method.
func (w *HashWriter) WriteValueHash(h uint64) {
	w.buf = append(w.buf, tagHashed)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, h)
}

// WriteNil appends the contribution of a nil pointer, slice, or map.
func (w *HashWriter) WriteNil() {
	w.buf = append(w.buf, tagNil)
}

// Sum64 finishes the accumulated encoding with murmur3 x64-128 and
// returns the first word.
func (w *HashWriter) Sum64() uint64 {
	h1, _ := murmur3.Sum128(w.buf)
	return h1
}

// Hash returns a deterministic 64-bit hash of v, computed from its
// fields in declaration order. Equal values (per Equal) produce equal
// hashes; unequal values may collide.
func (d *Deriver) Hash(v any) uint64 {
	if v == nil {
		return 0
	}
	if h, ok := v.(Hasher); ok {
		return h.Hash()
	}
	w := NewHashWriter()
	d.hashValue(w, reflect.ValueOf(v), d.maxDepth)
	return w.Sum64()
}

func (d *Deriver) hashValue(w *HashWriter, v reflect.Value, depth int) {
	if depth <= 0 {
		panic(fmt.Errorf("%w: hashing %s", ErrDepthLimit, v.Type().String()))
	}

	// A type carrying its own Hash (usually generated) contributes its
	// result directly, keeping the two paths consistent.
	if v.Kind() == reflect.Struct && v.Type().Implements(hasherType) {
		w.WriteValueHash(v.Interface().(Hasher).Hash())
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		w.WriteBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.WriteInt64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.WriteUint64(v.Uint())
	case reflect.Float32, reflect.Float64:
		w.WriteFloat64(v.Float())
	case reflect.Complex64, reflect.Complex128:
		w.WriteComplex128(v.Complex())
	case reflect.String:
		w.WriteString(v.String())
	case reflect.Struct:
		info := d.mustTypeInfo(v.Type())
		w.buf = append(w.buf, tagStruct)
		w.buf = binary.AppendUvarint(w.buf, uint64(len(info.Fields)))
		for _, field := range info.Fields {
			d.hashValue(w, v.Field(field.Index), depth-1)
		}
	case reflect.Ptr:
		if v.IsNil() {
			w.WriteNil()
			return
		}
		d.hashValue(w, v.Elem(), depth-1)
	case reflect.Interface:
		if v.IsNil() {
			w.WriteNil()
			return
		}
		elem := v.Elem()
		w.buf = append(w.buf, tagIface)
		w.WriteString(elem.Type().String())
		d.hashValue(w, elem, depth-1)
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			w.WriteNil()
			return
		}
		w.buf = append(w.buf, tagSeq)
		w.buf = binary.AppendUvarint(w.buf, uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			d.hashValue(w, v.Index(i), depth-1)
		}
	case reflect.Map:
		if v.IsNil() {
			w.WriteNil()
			return
		}
		// Entry hashes fold with xor so map iteration order cannot
		// leak into the result.
		var folded uint64
		iter := v.MapRange()
		for iter.Next() {
			ew := NewHashWriter()
			d.hashValue(ew, iter.Key(), depth-1)
			d.hashValue(ew, iter.Value(), depth-1)
			folded ^= ew.Sum64()
		}
		w.buf = append(w.buf, tagMap)
		w.buf = binary.AppendUvarint(w.buf, uint64(v.Len()))
		w.buf = binary.LittleEndian.AppendUint64(w.buf, folded)
	default:
		panic(fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type().String()))
	}
}

var hasherType = reflect.TypeOf((*Hasher)(nil)).Elem()
