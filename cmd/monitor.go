// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsar-tools/pulsarctl/internal/device"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Dump raw inbound USB traffic",
	Long: `Continuously read the mouse's IN endpoint and print every transfer with a
timestamp and hex dump.

Useful for reverse engineering: move the mouse, press buttons, or change a
setting in another tool and watch what the device reports.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if debugMode {
		return errors.New("monitor needs real hardware; debug mode has nothing to capture")
	}

	s, err := device.OpenUSB()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Pulsar X2 - USB traffic monitor\n")
	fmt.Printf("Press Ctrl+C to exit\n\n")

	for {
		data, err := s.ReadRaw(ctx)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Printf("\nMonitor stopped.\n")
				return nil
			}
			log.Printf("read error: %v", err)
			continue
		}
		fmt.Printf("[%s] %2d bytes: % 02x\n",
			time.Now().Format("15:04:05.000"), len(data), data)
	}
}
