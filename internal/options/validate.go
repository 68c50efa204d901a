// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/oasmodels/oaserrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources maps each option name to whether it was set. The returned error is
// an *oaserrors.ConfigError naming the offending options.
func ValidateSingleInputSource(pkg string, sources map[string]bool) error {
	var set []string
	for _, name := range sortedKeys(sources) {
		if sources[name] {
			set = append(set, name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &oaserrors.ConfigError{
			Option:  "input",
			Message: pkg + ": must specify an input source (use " + joinNames(sortedKeys(sources)) + ")",
		}
	default:
		return &oaserrors.ConfigError{
			Option:  "input",
			Value:   joinNames(set),
			Message: pkg + ": must specify exactly one input source",
		}
	}
}
