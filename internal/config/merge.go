package config

import "fmt"

// Resolve applies the field precedence rule: an explicit caller-supplied
// value wins over config values, and config values are consulted in the
// order given (primary key before legacy alias). Returns the first
// non-empty value, or "" when the field is absent everywhere.
func Resolve(explicit string, fromConfig ...string) string {
	if explicit != "" {
		return explicit
	}
	for _, v := range fromConfig {
		if v != "" {
			return v
		}
	}
	return ""
}

// Require returns an error naming the field when its resolved value is
// empty. The field name uses config-document notation (e.g. "hostKey.name")
// so the operator can see exactly what to supply.
func Require(field, value string) error {
	if value == "" {
		return fmt.Errorf("missing required value: %s (set it via flag or config file)", field)
	}
	return nil
}
