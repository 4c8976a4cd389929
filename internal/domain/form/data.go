package form

import "gorm.io/datatypes"

// CloneData deep-copies a form payload so a snapshot never shares nested maps
// or slices with the live form.
func CloneData(src map[string]interface{}) datatypes.JSONMap {
	if src == nil {
		return datatypes.JSONMap{}
	}
	dst := make(datatypes.JSONMap, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return map[string]interface{}(CloneData(val))
	case datatypes.JSONMap:
		return CloneData(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case []byte:
		return append([]byte(nil), val...)
	default:
		return val
	}
}
