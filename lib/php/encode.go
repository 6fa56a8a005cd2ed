// Package php renders JSON-like values as PHP literal expressions.
package php

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Pair is one entry of an associative array.
type Pair struct {
	Key   string
	Value any
}

// Map is an associative array that keeps its insertion order.
type Map []Pair

var stringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Marshal encodes v in the same form json2php does, e.g.
// array('dependencies' => array('wp-blocks'), 'version' => null).
func Marshal(v any) (string, error) {
	var sb strings.Builder
	if err := encode(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func encode(sb *strings.Builder, v any) error {
	switch val := v.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		sb.WriteString(strconv.FormatBool(val))
	case string:
		sb.WriteString(quote(val))
	case *string:
		if val == nil {
			sb.WriteString("null")
			return nil
		}
		sb.WriteString(quote(*val))
	case int:
		sb.WriteString(strconv.Itoa(val))
	case int64:
		sb.WriteString(strconv.FormatInt(val, 10))
	case float64:
		sb.WriteString(strconv.FormatFloat(val, 'f', -1, 64))
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return encodeList(sb, items)
	case []any:
		return encodeList(sb, val)
	case Map:
		return encodeMap(sb, val)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		m := make(Map, len(keys))
		for i, k := range keys {
			m[i] = Pair{Key: k, Value: val[k]}
		}
		return encodeMap(sb, m)
	default:
		return fmt.Errorf("php: unsupported type %T", v)
	}
	return nil
}

func encodeList(sb *strings.Builder, items []any) error {
	sb.WriteString("array(")
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := encode(sb, item); err != nil {
			return err
		}
	}
	sb.WriteString(")")
	return nil
}

func encodeMap(sb *strings.Builder, m Map) error {
	sb.WriteString("array(")
	for i, p := range m {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quote(p.Key))
		sb.WriteString(" => ")
		if err := encode(sb, p.Value); err != nil {
			return fmt.Errorf("php: key %q: %w", p.Key, err)
		}
	}
	sb.WriteString(")")
	return nil
}

func quote(s string) string {
	return "'" + stringEscaper.Replace(s) + "'"
}
