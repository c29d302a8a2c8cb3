// Package version records the module version reported by the CLI.
package version

// Current is the module version, without a "v" prefix.
const Current = "0.1.0"
