package utils

import (
	"bytes"
	"encoding/json"
	"sort"
)

// OrderedKV is a value with an explicit position inside an OrderedKVMap.
type OrderedKV[T any] struct {
	Value T
	Order int64
}

// OrderedKVMap serializes as a JSON object whose keys follow Order, then key.
// HTML characters are not escaped, so the output is byte-stable for hashing.
// Call MarshalJSON directly: json.Marshal re-escapes the result.
type OrderedKVMap[T any] map[string]OrderedKV[T]

func (om OrderedKVMap[T]) MarshalJSON() ([]byte, error) {
	type pair struct {
		key   string
		value T
		order int64
	}
	pairs := make([]pair, 0, len(om))
	for k, v := range om {
		pairs = append(pairs, pair{
			key:   k,
			value: v.Value,
			order: v.Order,
		})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].order == pairs[j].order {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].order < pairs[j].order
	})

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := encode(p.key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valueBytes, err := encode(p.value)
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Sorted builds an OrderedKVMap whose order is the lexicographic key order.
func Sorted[T any](m map[string]T) OrderedKVMap[T] {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	om := make(OrderedKVMap[T], len(m))
	for i, k := range keys {
		om[k] = OrderedKV[T]{Value: m[k], Order: int64(i)}
	}
	return om
}

// CanonicalJSON serializes m with sorted keys and no HTML escaping.
func CanonicalJSON[T any](m map[string]T) ([]byte, error) {
	return Sorted(m).MarshalJSON()
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
