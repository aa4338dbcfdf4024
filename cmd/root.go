// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pulsar-tools/pulsarctl/internal/device"
	"github.com/pulsar-tools/pulsarctl/internal/mouse"
	"github.com/pulsar-tools/pulsarctl/internal/profile"
)

var (
	// Transport flags
	debugMode bool
	useHID    bool

	// Setter flags
	dpiValue         int
	dpiStage         int
	pollingRate      int
	liftoffDistance  float64
	motionSync       string
	idleTime         int
	batteryThreshold int
	profileSlot      int

	// Query flags
	showInfo     bool
	showSettings bool
)

var rootCmd = &cobra.Command{
	Use:   "pulsarctl",
	Short: "Pulsar X2 gaming mouse configurator",
	Long: `Pulsarctl - configure a Pulsar X2 gaming mouse from the command line.

Settings are applied to the device over USB and mirrored into a local JSON
configuration file, which remains the source of truth when the mouse is
unplugged.

Run with setter flags for one-shot changes, or with no flags on a terminal
to open the interactive menu.

Transport modes:
  default:  claim the raw USB interface (may need elevated privileges)
  --hid:    go through the OS HID driver instead
  --debug:  no hardware; commands are printed instead of sent`,
	Version:      "3.0.0",
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Run without a device; commands are printed instead of sent")
	rootCmd.PersistentFlags().BoolVar(&useHID, "hid", false, "Use the OS HID driver instead of the raw USB interface")

	f := rootCmd.Flags()
	f.IntVar(&dpiValue, "dpi", 0, "Set DPI (50-32000, rounded to the nearest 10)")
	f.IntVar(&dpiStage, "stage", 0, "DPI stage to set (1-6; default is the active stage)")
	f.IntVar(&pollingRate, "polling", 0, "Set polling rate in Hz (125, 250, 500, 1000, 2000, 4000, 8000)")
	f.Float64Var(&liftoffDistance, "liftoff", 0, "Set lift-off distance in mm (0.7, 1.0, 2.0)")
	f.StringVar(&motionSync, "motion-sync", "", "Enable or disable motion sync (on/off)")
	f.IntVar(&idleTime, "idle-time", 0, "Set idle time before sleep in seconds (30-900)")
	f.IntVar(&batteryThreshold, "battery-threshold", 0, "Set low-battery threshold percent (5-20, with --idle-time)")
	f.IntVar(&profileSlot, "profile", 0, "Save current settings to a device profile slot (1-4)")
	f.BoolVar(&showInfo, "info", false, "Show device information")
	f.BoolVar(&showSettings, "settings", false, "Show the current settings")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// openTransport picks the transport for this invocation: debug stub, HID
// driver, or the raw USB interface.
func openTransport() (device.Transport, error) {
	if debugMode {
		fmt.Println("DEBUG MODE - no device; commands are printed instead of sent")
		return device.OpenDebug(), nil
	}
	if useHID {
		return device.OpenHID()
	}
	return device.OpenUSB()
}

func runRoot(cmd *cobra.Command, args []string) error {
	store, err := profile.NewStore()
	if err != nil {
		return err
	}
	doc := store.Load()

	transport, err := openTransport()
	if err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			return fmt.Errorf("%w (re-run with --debug to work offline)", err)
		}
		return err
	}
	defer transport.Close()

	m := mouse.New(store, doc, transport, debugMode)

	flags := cmd.Flags()
	if flags.Changed("stage") && !flags.Changed("dpi") {
		return errors.New("--stage only makes sense together with --dpi")
	}
	if flags.Changed("battery-threshold") && !flags.Changed("idle-time") {
		return errors.New("--battery-threshold only makes sense together with --idle-time")
	}

	ran := false

	if flags.Changed("dpi") {
		fmt.Println(m.SetDPI(dpiValue, dpiStage))
		ran = true
	}
	if flags.Changed("polling") {
		fmt.Println(m.SetPollingRate(pollingRate))
		ran = true
	}
	if flags.Changed("liftoff") {
		fmt.Println(m.SetLiftoffDistance(liftoffDistance))
		ran = true
	}
	if flags.Changed("motion-sync") {
		switch motionSync {
		case "on":
			fmt.Println(m.SetMotionSync(true))
		case "off":
			fmt.Println(m.SetMotionSync(false))
		default:
			return fmt.Errorf("invalid --motion-sync value %q: use on or off", motionSync)
		}
		ran = true
	}
	if flags.Changed("idle-time") {
		var threshold *int
		if flags.Changed("battery-threshold") {
			threshold = &batteryThreshold
		}
		fmt.Println(m.SetPowerSaving(idleTime, threshold))
		ran = true
	}
	if flags.Changed("profile") {
		out, err := m.SaveToProfile(profileSlot)
		if err != nil {
			return err
		}
		fmt.Println(out)
		ran = true
	}
	if showInfo {
		out, err := m.DeviceInfo()
		if err != nil {
			return err
		}
		fmt.Println(out)
		ran = true
	}
	if showSettings {
		fmt.Println(m.Settings())
		ran = true
	}

	if ran {
		return nil
	}

	// No flags at all: open the interactive menu when attached to a
	// terminal, otherwise print usage.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return runMenu(m)
	}
	return cmd.Help()
}
