package cmd

import (
	"fmt"

	"wrtforge/internal/hardware"
	"wrtforge/internal/uci"
)

// RunExport compiles the plan into a standalone shell script. An output
// path of "-" writes the script to stdout.
func RunExport(planFile, outPath string, mode hardware.Mode) error {
	p, err := loadPlan(planFile)
	if err != nil {
		return err
	}

	hw := planHardware(p, mode)
	script := uci.NewScript()
	creds, err := newEngine(hw).Run(p, hw, script)
	if err != nil {
		return err
	}

	if outPath == "-" {
		fmt.Print(script.String())
		printCredentials(creds)
		return nil
	}

	if err := script.WriteFile(outPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %d commands to %s (%s)\n", len(script.Commands), outPath, describeHardware(hw))
	printCredentials(creds)
	return nil
}
