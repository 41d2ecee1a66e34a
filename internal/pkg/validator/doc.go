// Package validator validates request and domain structs.
//
// Business code depends on the Validator interface; V10Validator implements
// it with go-playground/validator and English messages keyed by the JSON field
// name.
package validator
