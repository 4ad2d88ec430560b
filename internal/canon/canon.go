// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package canon produces byte-deterministic JSON: UTF-8, object keys
// sorted lexicographically, no insignificant whitespace. The
// protection engine signs and hashes only this encoding, never the
// Go-standard-library map iteration order, so that signatures verify
// identically across implementations.
package canon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Marshal encodes v as canonical JSON. v is typically a
// map[string]interface{} decoded from arbitrary input, but any value
// json.Marshal accepts is supported; maps nested at any depth are
// re-serialized with sorted keys.
func Marshal(v interface{}) ([]byte, error) {
	normalized, err := normalize(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode(&buf, normalized); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalize round-trips v through encoding/json to obtain plain
// Go values (map[string]interface{}, []interface{}, json.Number,
// string, bool, nil) regardless of v's concrete type.
func normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func encode(buf *bytes.Buffer, v interface{}) error {
	switch t := v.(type) {
	case map[string]interface{}:
		return encodeObject(buf, t)
	case []interface{}:
		return encodeArray(buf, t)
	default:
		return encodeScalar(buf, v)
	}
}

func encodeObject(buf *bytes.Buffer, m map[string]interface{}) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		if err := encode(buf, m[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, a []interface{}) error {
	buf.WriteByte('[')
	for i, elem := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encode(buf, elem); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeScalar(buf *bytes.Buffer, v interface{}) error {
	switch t := v.(type) {
	case json.Number:
		buf.WriteString(t.String())
		return nil
	case nil:
		buf.WriteString("null")
		return nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("canon: unsupported value %T: %w", v, err)
		}
		buf.Write(b)
		return nil
	}
}
