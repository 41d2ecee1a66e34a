// Package messaging publishes domain events to a message broker.
//
// Business code depends on Publisher; the concrete broker (NATS, or a noop
// sink when no broker is configured) is picked at startup by NewFromDriver.
package messaging
