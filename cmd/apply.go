package cmd

import (
	"fmt"
	"os"

	"wrtforge/internal/hardware"
	"wrtforge/internal/logging"
	"wrtforge/internal/orchestrator"
	"wrtforge/internal/uci"
)

var log = logging.Default().WithComponent("cmd")

// RunApply probes the live device and issues the compiled commands
// against its configuration store. With dryRun the same sequence is
// printed instead, so the printed stream is exactly what a real apply
// would execute.
func RunApply(planFile string, mode hardware.Mode, dryRun bool) error {
	p, err := loadPlan(planFile)
	if err != nil {
		return err
	}

	runner := &uci.RealCommandRunner{}
	hw := hardware.ProbeWithMode(runner, mode)
	fmt.Printf("Applying to %s\n", describeHardware(hw))

	var opts []orchestrator.Option
	if uci.Query(runner, "show", "wireless") == "" {
		log.Warn("no wireless subsystem found, wireless sections will be skipped")
		opts = append(opts, orchestrator.WithoutWireless())
	}

	var sink uci.Sink
	var rec *uci.Recorder
	if dryRun {
		rec = &uci.Recorder{Out: os.Stdout}
		sink = rec
	} else {
		sink = &uci.Executor{Runner: runner}
	}

	creds, err := newEngine(hw, opts...).Run(p, hw, sink)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("\n%d commands, nothing applied.\n", len(rec.Commands))
	} else {
		fmt.Println("Configuration committed. Reload with: /etc/init.d/network restart")
	}
	printCredentials(creds)
	return nil
}
