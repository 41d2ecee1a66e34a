// Package otp generates short numeric one-time codes.
//
// Codes are drawn uniformly from crypto/rand over the range of numbers with
// exactly the configured number of digits (no leading zero), so a 5 digit
// generator yields values in [10000, 99999].
package otp
