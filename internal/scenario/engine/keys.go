package engine

// Checker registration names, as they appear in scenario YAML expect blocks.
const (
	CheckerNameDefault        = "default"
	CheckerNamePositionNear   = "position_near"
	CheckerNameValueInRange   = "value_in_range"
	CheckerNameValueAtLeast   = "value_at_least"
	CheckerNameValueAtMost    = "value_at_most"
	CheckerNameErrorContains  = "error_contains"
)

// Output keys shared between handlers and checkers.
const (
	// KeyError holds the error message of a step that was allowed to fail.
	KeyError = "error"
)
