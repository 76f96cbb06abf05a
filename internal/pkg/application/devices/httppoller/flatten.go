package httppoller

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var indexKey = regexp.MustCompile(`\[(\d+)\]`)

// Flatten walks a decoded JSON document and returns its leaf values keyed
// by normalized dotted paths. Objects contribute ".key" segments, arrays
// "[i]" segments; normalization rewrites ":" to "." and "[i]" to ".i" so
// that keys are comparable across payload revisions.
func Flatten(data any) map[string]string {
	flat := map[string]string{}
	parseTree(data, "", flat)

	normalized := make(map[string]string, len(flat))
	for key, value := range flat {
		normalized[normalizeKey(key)] = value
	}

	return normalized
}

func parseTree(node any, parentKey string, out map[string]string) {
	switch n := node.(type) {
	case []any:
		for i, item := range n {
			key := fmt.Sprintf("[%d]", i)
			if parentKey != "" {
				key = parentKey + key
			}
			parseTree(item, key, out)
		}
	case map[string]any:
		for k, v := range n {
			key := k
			if parentKey != "" {
				key = parentKey + "." + k
			}
			parseTree(v, key, out)
		}
	default:
		out[parentKey] = leafToString(n)
	}
}

func normalizeKey(key string) string {
	key = strings.ReplaceAll(key, ":", ".")
	return indexKey.ReplaceAllString(key, ".$1")
}

func leafToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
