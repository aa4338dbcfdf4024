// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova
//
// Pulsarctl - Pulsar X2 gaming mouse configurator
//
// A CLI tool for configuring the Pulsar X2 over USB, with a local JSON
// configuration mirror that works even without the mouse attached.

package main

import (
	"os"

	"github.com/pulsar-tools/pulsarctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
