// Package types defines the Config, store interfaces, schema types, and
// standard error values shared across the ctlfiles packages.
package types
