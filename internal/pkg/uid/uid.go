// Package uid generates identifiers for correlation IDs and token IDs.
package uid

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
