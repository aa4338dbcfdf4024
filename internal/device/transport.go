// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

// Package device owns the transport to the mouse. Three implementations of
// the Transport interface exist: a libusb-level session (usb.go), a HID
// report session for hosts where the raw interface cannot be claimed
// (hid.go), and a no-op debug session (debug.go). The facade and the
// command encoder never branch on which one is in use.
package device

import (
	"time"

	"github.com/pulsar-tools/pulsarctl/pkg/pulsar"
)

// DefaultTimeout bounds the wait for a command reply.
const DefaultTimeout = 300 * time.Millisecond

// replyDelay paces the read after a write so the device can process the
// command.
const replyDelay = 50 * time.Millisecond

// Transport sends fixed-size command frames to the mouse.
//
// Send writes the frame and, when expectResponse is set, waits up to
// timeout for a reply. A reply timeout is not an error: it yields
// (nil, nil), matching the "no response" semantics of the protocol.
type Transport interface {
	Send(cmd pulsar.Command, expectResponse bool, timeout time.Duration) ([]byte, error)
	Close() error
}

// SessionState tracks how far a live session got during connect.
type SessionState int

const (
	// Disconnected means no device handle is held.
	Disconnected SessionState = iota
	// Connected means the device was found and configured but endpoints
	// are not resolved yet.
	Connected
	// EndpointsResolved means the session is ready to send commands.
	EndpointsResolved
)

func (s SessionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case EndpointsResolved:
		return "ready"
	default:
		return "unknown"
	}
}
