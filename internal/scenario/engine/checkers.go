package engine

import (
	"fmt"
	"strings"
)

// ToFloat64 converts various numeric types to float64 for comparison.
func ToFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}

// expectMap normalizes the expected value to a map. Scenario YAML produces
// map[string]interface{} for nested blocks.
func expectMap(expected interface{}) (map[string]interface{}, bool) {
	m, ok := expected.(map[string]interface{})
	return m, ok
}

// mapFloat reads a numeric field from an expectation map.
func mapFloat(m map[string]interface{}, field string) (float64, bool) {
	v, ok := m[field]
	if !ok {
		return 0, false
	}
	return ToFloat64(v)
}

// lookupNumber reads an output key and converts it to float64.
func lookupNumber(state *ExecutionState, key string) (float64, *ExpectResult) {
	actual, exists := state.Get(key)
	if !exists {
		return 0, &ExpectResult{
			Key:     key,
			Passed:  false,
			Message: fmt.Sprintf("output key %q not found", key),
		}
	}
	n, ok := ToFloat64(actual)
	if !ok {
		return 0, &ExpectResult{
			Key:     key,
			Actual:  actual,
			Passed:  false,
			Message: fmt.Sprintf("output %q is not numeric: %T", key, actual),
		}
	}
	return n, nil
}

// CheckerPositionNear checks that an axis position output is within a
// tolerance of a value. Expected is a map with "axis", "value" and an
// optional "tolerance" (default 0.001).
func CheckerPositionNear(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	m, ok := expectMap(expected)
	if !ok {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Passed:   false,
			Message:  fmt.Sprintf("position_near expects a map, got %T", expected),
		}
	}

	axisName, _ := m["axis"].(string)
	if axisName == "" {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Passed:   false,
			Message:  "position_near requires an axis field",
		}
	}

	want, ok := mapFloat(m, "value")
	if !ok {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Passed:   false,
			Message:  "position_near requires a numeric value field",
		}
	}

	tolerance := 0.001
	if t, ok := mapFloat(m, "tolerance"); ok {
		tolerance = t
	}

	outputKey := "position_" + strings.ToLower(axisName)
	actual, fail := lookupNumber(state, outputKey)
	if fail != nil {
		fail.Expected = expected
		return fail
	}

	diff := actual - want
	if diff < 0 {
		diff = -diff
	}

	passed := diff <= tolerance
	msg := fmt.Sprintf("|%v - %v| = %v (tolerance %v)", actual, want, diff, tolerance)
	return &ExpectResult{
		Key:      key,
		Expected: expected,
		Actual:   actual,
		Passed:   passed,
		Message:  msg,
	}
}

// CheckerValueInRange checks that a numeric output is within [min, max].
// Expected is a map with "key", "min" and "max".
func CheckerValueInRange(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	m, ok := expectMap(expected)
	if !ok {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Passed:   false,
			Message:  fmt.Sprintf("value_in_range expects a map, got %T", expected),
		}
	}

	outputKey, _ := m["key"].(string)
	minVal, okMin := mapFloat(m, "min")
	maxVal, okMax := mapFloat(m, "max")
	if outputKey == "" || !okMin || !okMax {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Passed:   false,
			Message:  "value_in_range requires key, min and max fields",
		}
	}

	actual, fail := lookupNumber(state, outputKey)
	if fail != nil {
		fail.Expected = expected
		return fail
	}

	passed := actual >= minVal && actual <= maxVal
	return &ExpectResult{
		Key:      key,
		Expected: expected,
		Actual:   actual,
		Passed:   passed,
		Message:  fmt.Sprintf("%v in [%v, %v] = %v", actual, minVal, maxVal, passed),
	}
}

// CheckerValueAtLeast checks that a numeric output is >= a value.
// Expected is a map with "key" and "value".
func CheckerValueAtLeast(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	return compareChecker(key, expected, state, "value_at_least", func(actual, want float64) (bool, string) {
		return actual >= want, fmt.Sprintf("%v >= %v", actual, want)
	})
}

// CheckerValueAtMost checks that a numeric output is <= a value.
// Expected is a map with "key" and "value".
func CheckerValueAtMost(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	return compareChecker(key, expected, state, "value_at_most", func(actual, want float64) (bool, string) {
		return actual <= want, fmt.Sprintf("%v <= %v", actual, want)
	})
}

func compareChecker(key string, expected interface{}, state *ExecutionState, name string, cmp func(actual, want float64) (bool, string)) *ExpectResult {
	m, ok := expectMap(expected)
	if !ok {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Passed:   false,
			Message:  fmt.Sprintf("%s expects a map, got %T", name, expected),
		}
	}

	outputKey, _ := m["key"].(string)
	want, okVal := mapFloat(m, "value")
	if outputKey == "" || !okVal {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Passed:   false,
			Message:  fmt.Sprintf("%s requires key and value fields", name),
		}
	}

	actual, fail := lookupNumber(state, outputKey)
	if fail != nil {
		fail.Expected = expected
		return fail
	}

	passed, desc := cmp(actual, want)
	return &ExpectResult{
		Key:      key,
		Expected: expected,
		Actual:   actual,
		Passed:   passed,
		Message:  fmt.Sprintf("%s = %v", desc, passed),
	}
}

// CheckerErrorContains checks that the step's captured error message
// contains the expected substring. Handlers store errors under KeyError
// when a step runs with allow_failure.
func CheckerErrorContains(key string, expected interface{}, state *ExecutionState) *ExpectResult {
	want, ok := expected.(string)
	if !ok {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Passed:   false,
			Message:  fmt.Sprintf("error_contains expects a string, got %T", expected),
		}
	}

	actual, exists := state.Get(KeyError)
	if !exists {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Passed:   false,
			Message:  "no error was captured",
		}
	}

	msg, _ := actual.(string)
	passed := strings.Contains(msg, want)
	result := &ExpectResult{
		Key:      key,
		Expected: expected,
		Actual:   actual,
		Passed:   passed,
	}
	if passed {
		result.Message = fmt.Sprintf("error contains %q", want)
	} else {
		result.Message = fmt.Sprintf("error %q does not contain %q", msg, want)
	}
	return result
}
