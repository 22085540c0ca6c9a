package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// refPattern matches {{ variable }} templates.
var refPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Interpolate replaces {{ variable }} placeholders in a string with values
// from state. Unknown variables are left unchanged.
func Interpolate(template string, state *ExecutionState) string {
	if state == nil {
		return template
	}

	return refPattern.ReplaceAllStringFunc(template, func(match string) string {
		sub := refPattern.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		value, exists := state.Outputs[sub[1]]
		if !exists {
			return match
		}
		return refValueString(value)
	})
}

// InterpolateParams resolves {{ variable }} references in a params map,
// recursing into nested maps and lists. A string that is exactly one
// reference keeps the referenced value's type; mixed content becomes a
// string. The original map is not modified.
func InterpolateParams(params map[string]interface{}, state *ExecutionState) map[string]interface{} {
	if params == nil {
		return nil
	}

	result := make(map[string]interface{}, len(params))
	for key, value := range params {
		result[key] = interpolateValue(value, state)
	}
	return result
}

func interpolateValue(value interface{}, state *ExecutionState) interface{} {
	if state == nil {
		return value
	}

	switch v := value.(type) {
	case string:
		return interpolateString(v, state)
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			result[k] = interpolateValue(val, state)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			result[i] = interpolateValue(val, state)
		}
		return result
	default:
		return value
	}
}

func interpolateString(s string, state *ExecutionState) interface{} {
	trimmed := strings.TrimSpace(s)

	// A pure reference preserves the value's type
	if loc := refPattern.FindStringIndex(trimmed); loc != nil && loc[0] == 0 && loc[1] == len(trimmed) {
		sub := refPattern.FindStringSubmatch(trimmed)
		if len(sub) >= 2 {
			if value, exists := state.Outputs[sub[1]]; exists {
				return value
			}
		}
		return s
	}

	return Interpolate(s, state)
}

func refValueString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		// Whole numbers render without trailing zeros
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", value)
	}
}
