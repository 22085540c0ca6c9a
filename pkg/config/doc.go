// Package config loads and validates stage profiles.
//
// # Profiles
//
// A profile is a YAML document describing the hardware of one stage setup:
// the controller behind each axis, travel ranges, velocities, the reference
// order and the runtime tunables of the orchestration layer. Default returns
// the built-in profile of the reference setup; Load reads a profile file on
// top of those defaults, so a profile only has to name what differs.
//
// # Overrides
//
// When a file named local.overrides.yaml sits next to the loaded profile it
// is applied on top, field by field. Lab machines keep their COM port
// assignments there without touching the shared profile.
package config
