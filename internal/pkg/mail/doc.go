// Package mail sends email through a pluggable provider.
//
// Callers build a provider-agnostic Message and hand it to a Mail; the driver
// (plain SMTP or the SendGrid HTTP API) is chosen from configuration at
// startup with New.
package mail
