// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package device

import (
	"fmt"
	"time"

	"github.com/pulsar-tools/pulsarctl/pkg/pulsar"
)

// DebugSession never touches hardware. Every frame is printed, and when a
// response is expected an all-zero placeholder reply comes back, so every
// facade operation can be exercised deterministically without a mouse.
type DebugSession struct{}

// OpenDebug returns a debug transport.
func OpenDebug() *DebugSession {
	return &DebugSession{}
}

// Send prints the frame and synthesizes a zeroed reply when one is
// expected.
func (s *DebugSession) Send(cmd pulsar.Command, expectResponse bool, _ time.Duration) ([]byte, error) {
	fmt.Printf("DEBUG - sending command: %s\n", pulsar.FormatCommand(cmd))
	if expectResponse {
		return make([]byte, pulsar.CommandSize), nil
	}
	return nil, nil
}

// Close is a no-op.
func (s *DebugSession) Close() error {
	return nil
}
