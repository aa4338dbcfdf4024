// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package device

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/gousb"

	"github.com/pulsar-tools/pulsarctl/pkg/pulsar"
)

// ErrDeviceNotFound is returned when no device matches the Pulsar
// vendor/product ids. The caller may fall back to debug mode.
var ErrDeviceNotFound = errors.New("Pulsar X2 not found; make sure the mouse is connected")

// USBSession talks to the mouse at the libusb level: it claims the first
// interface of configuration 1 and uses one IN and one OUT endpoint for
// command I/O.
type USBSession struct {
	ctx   *gousb.Context
	dev   *gousb.Device
	cfg   *gousb.Config
	intf  *gousb.Interface
	epIn  *gousb.InEndpoint
	epOut *gousb.OutEndpoint
	state SessionState
}

// OpenUSB locates the mouse by vendor/product id and resolves its data
// endpoints. On any failure the partially opened session is released and
// the state it reached is reported in the error.
func OpenUSB() (*USBSession, error) {
	s := &USBSession{ctx: gousb.NewContext(), state: Disconnected}

	dev, err := s.ctx.OpenDeviceWithVIDPID(gousb.ID(pulsar.VendorID), gousb.ID(pulsar.ProductID))
	if err != nil {
		s.Close()
		if errors.Is(err, gousb.ErrorAccess) {
			return nil, fmt.Errorf("cannot open device: %v (try running with elevated privileges)", err)
		}
		return nil, fmt.Errorf("cannot open device: %w", err)
	}
	if dev == nil {
		s.Close()
		return nil, ErrDeviceNotFound
	}
	s.dev = dev

	// Release any exclusive kernel claim on the interface. Failure is a
	// warning, not fatal: some hosts never hold such a claim.
	if err := dev.SetAutoDetach(true); err != nil {
		log.Printf("note: cannot detach kernel driver: %v", err)
	}

	cfg, err := dev.Config(1)
	if err != nil {
		s.Close()
		if errors.Is(err, gousb.ErrorAccess) {
			return nil, fmt.Errorf("cannot configure device: %v (try running with elevated privileges)", err)
		}
		return nil, fmt.Errorf("cannot configure device: %w", err)
	}
	s.cfg = cfg
	s.state = Connected

	if err := s.resolveEndpoints(); err != nil {
		s.Close()
		return nil, err
	}
	s.state = EndpointsResolved

	log.Printf("connected to Pulsar %s (endpoints IN 0x%02x, OUT 0x%02x)",
		pulsar.ModelName, uint8(s.epIn.Desc.Address), uint8(s.epOut.Desc.Address))
	return s, nil
}

// resolveEndpoints locates one inbound and one outbound data endpoint on
// the first available interface. Without both no communication is
// possible, so missing endpoints are fatal to the session.
func (s *USBSession) resolveEndpoints() error {
	intf, err := s.cfg.Interface(0, 0)
	if err != nil {
		return fmt.Errorf("cannot claim interface: %w", err)
	}
	s.intf = intf

	var inNum, outNum int
	var haveIn, haveOut bool
	for _, ep := range intf.Setting.Endpoints {
		switch {
		case ep.Direction == gousb.EndpointDirectionIn && !haveIn:
			inNum, haveIn = ep.Number, true
		case ep.Direction == gousb.EndpointDirectionOut && !haveOut:
			outNum, haveOut = ep.Number, true
		}
	}
	if !haveIn || !haveOut {
		return errors.New("cannot find data endpoints; the USB driver may be incompatible")
	}

	epIn, err := intf.InEndpoint(inNum)
	if err != nil {
		return fmt.Errorf("cannot open IN endpoint: %w", err)
	}
	epOut, err := intf.OutEndpoint(outNum)
	if err != nil {
		return fmt.Errorf("cannot open OUT endpoint: %w", err)
	}
	s.epIn, s.epOut = epIn, epOut
	return nil
}

// State returns how far the session got during connect.
func (s *USBSession) State() SessionState {
	return s.state
}

// Send writes the command frame to the OUT endpoint. With expectResponse
// set it pauses briefly, then reads up to the endpoint's max packet size
// bounded by timeout. A read timeout yields no reply without error; write
// failures abort before any read.
func (s *USBSession) Send(cmd pulsar.Command, expectResponse bool, timeout time.Duration) ([]byte, error) {
	if s.state != EndpointsResolved {
		return nil, fmt.Errorf("session %s: cannot send command", s.state)
	}

	n, err := s.epOut.Write(cmd.Bytes())
	if err != nil {
		return nil, fmt.Errorf("cannot send command: %w", err)
	}
	log.Printf("command sent (%d bytes): %s", n, pulsar.FormatCommand(cmd))

	if !expectResponse {
		return nil, nil
	}

	time.Sleep(replyDelay)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	buf := make([]byte, s.epIn.Desc.MaxPacketSize)
	n, err = s.epIn.ReadContext(ctx, buf)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, gousb.ErrorTimeout) {
			log.Printf("timeout waiting for a response")
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read response: %w", err)
	}
	return buf[:n], nil
}

// ReadRaw reads one inbound transfer, used by the monitor command to
// observe device traffic. It blocks until data arrives or ctx is done.
func (s *USBSession) ReadRaw(ctx context.Context) ([]byte, error) {
	if s.state != EndpointsResolved {
		return nil, fmt.Errorf("session %s: cannot read", s.state)
	}
	buf := make([]byte, s.epIn.Desc.MaxPacketSize)
	n, err := s.epIn.ReadContext(ctx, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Close releases the interface, configuration, device handle and libusb
// context, in that order. Safe on partially opened sessions.
func (s *USBSession) Close() error {
	if s.intf != nil {
		s.intf.Close()
		s.intf = nil
	}
	if s.cfg != nil {
		s.cfg.Close()
		s.cfg = nil
	}
	if s.dev != nil {
		s.dev.Close()
		s.dev = nil
	}
	if s.ctx != nil {
		s.ctx.Close()
		s.ctx = nil
	}
	s.state = Disconnected
	return nil
}
