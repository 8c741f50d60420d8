package cmd

import (
	"fmt"
	"os"

	"wrtforge/internal/hardware"
	"wrtforge/internal/uci"
)

// RunPreview compiles the plan against plan-derived hardware and prints
// every command that apply would issue, without touching a device.
func RunPreview(planFile string, mode hardware.Mode) error {
	p, err := loadPlan(planFile)
	if err != nil {
		return err
	}

	hw := planHardware(p, mode)
	fmt.Printf("Previewing for %s\n\n", describeHardware(hw))

	rec := &uci.Recorder{Out: os.Stdout}
	creds, err := newEngine(hw).Run(p, hw, rec)
	if err != nil {
		return err
	}

	fmt.Printf("\n%d commands, nothing applied.\n", len(rec.Commands))
	printCredentials(creds)
	return nil
}
