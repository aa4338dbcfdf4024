// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package device

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sstallion/go-hid"

	"github.com/pulsar-tools/pulsarctl/pkg/pulsar"
)

// hidReadLen matches the largest report the dongle is known to produce.
const hidReadLen = 64

// HIDSession talks to the mouse through the OS HID driver instead of
// claiming the raw USB interface. Useful on hosts where detaching the
// kernel driver is not permitted.
type HIDSession struct {
	dev   *hid.Device
	state SessionState
}

// OpenHID opens the first HID interface matching the Pulsar
// vendor/product ids.
func OpenHID() (*HIDSession, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("cannot initialize HID backend: %w", err)
	}

	dev, err := hid.OpenFirst(pulsar.VendorID, pulsar.ProductID)
	if err != nil {
		hid.Exit()
		return nil, ErrDeviceNotFound
	}

	log.Printf("connected to Pulsar %s via HID", pulsar.ModelName)
	return &HIDSession{dev: dev, state: EndpointsResolved}, nil
}

// State returns the session state. HID sessions have no intermediate
// connect stage: they are either ready or closed.
func (s *HIDSession) State() SessionState {
	return s.state
}

// Send writes the command as an output report (report id 0) and optionally
// reads one input report bounded by timeout. A read timeout yields no
// reply without error.
func (s *HIDSession) Send(cmd pulsar.Command, expectResponse bool, timeout time.Duration) ([]byte, error) {
	if s.state != EndpointsResolved {
		return nil, errors.New("HID session closed: cannot send command")
	}

	report := append([]byte{0x00}, cmd.Bytes()...)
	if _, err := s.dev.Write(report); err != nil {
		return nil, fmt.Errorf("cannot send command: %w", err)
	}
	log.Printf("command sent: %s", pulsar.FormatCommand(cmd))

	if !expectResponse {
		return nil, nil
	}

	time.Sleep(replyDelay)

	buf := make([]byte, hidReadLen)
	n, err := s.dev.ReadWithTimeout(buf, timeout)
	if err != nil {
		return nil, fmt.Errorf("cannot read response: %w", err)
	}
	if n == 0 {
		log.Printf("timeout waiting for a response")
		return nil, nil
	}
	return buf[:n], nil
}

// Close releases the HID handle and backend.
func (s *HIDSession) Close() error {
	s.state = Disconnected
	if s.dev != nil {
		s.dev.Close()
		s.dev = nil
	}
	return hid.Exit()
}
