package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"wrtforge/cmd"
	"wrtforge/internal/brand"
	"wrtforge/internal/hardware"
	"wrtforge/internal/logging"
	"wrtforge/internal/plan"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "apply":
		applyFlags := flag.NewFlagSet("apply", flag.ExitOnError)
		mode := applyFlags.String("mode", "auto", "Switching back-end: auto, dsa or swconfig")
		dryRun := applyFlags.Bool("dry-run", false, "Print commands without applying")
		applyFlags.BoolVar(dryRun, "n", false, "Dry run (short)")
		verbose := applyFlags.Bool("verbose", false, "Debug logging")
		applyFlags.Parse(os.Args[2:])
		setVerbose(*verbose)

		hwMode, err := hardware.ParseMode(*mode)
		if err != nil {
			fail(err)
		}
		if err := cmd.RunApply(planArg(applyFlags), hwMode, *dryRun); err != nil {
			fail(err)
		}

	case "preview":
		previewFlags := flag.NewFlagSet("preview", flag.ExitOnError)
		mode := previewFlags.String("mode", "auto", "Switching back-end: auto, dsa or swconfig")
		verbose := previewFlags.Bool("verbose", false, "Debug logging")
		previewFlags.Parse(os.Args[2:])
		setVerbose(*verbose)

		hwMode, err := hardware.ParseMode(*mode)
		if err != nil {
			fail(err)
		}
		if err := cmd.RunPreview(planArg(previewFlags), hwMode); err != nil {
			fail(err)
		}

	case "export":
		exportFlags := flag.NewFlagSet("export", flag.ExitOnError)
		mode := exportFlags.String("mode", "auto", "Switching back-end: auto, dsa or swconfig")
		out := exportFlags.String("out", "-", "Output path for the script, - for stdout")
		exportFlags.StringVar(out, "o", "-", "Output path (short)")
		exportFlags.Parse(os.Args[2:])

		hwMode, err := hardware.ParseMode(*mode)
		if err != nil {
			fail(err)
		}
		if err := cmd.RunExport(planArg(exportFlags), *out, hwMode); err != nil {
			fail(err)
		}

	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		verbose := checkFlags.Bool("v", false, "Print the resolved topology")
		checkFlags.Parse(os.Args[2:])

		if err := cmd.RunCheck(planArg(checkFlags), *verbose); err != nil {
			fail(err)
		}

	case "detect":
		if err := cmd.RunDetect(); err != nil {
			fail(err)
		}

	case "diff":
		diffFlags := flag.NewFlagSet("diff", flag.ExitOnError)
		mode := diffFlags.String("mode", "auto", "Switching back-end: auto, dsa or swconfig")
		diffFlags.Parse(os.Args[2:])

		if diffFlags.NArg() < 1 {
			fail(fmt.Errorf("usage: %s diff <script> [plan-file]", brand.BinaryName))
		}
		scriptPath := diffFlags.Arg(0)
		planFile := brand.DefaultPlanPath()
		if diffFlags.NArg() > 1 {
			planFile = diffFlags.Arg(1)
		}

		hwMode, err := hardware.ParseMode(*mode)
		if err != nil {
			fail(err)
		}
		if err := cmd.RunDiff(planFile, scriptPath, hwMode); err != nil {
			fail(err)
		}

	case "version":
		fmt.Printf("%s %s\n", brand.Name, brand.Version)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// planArg resolves the positional plan file, defaulting to the
// installed location.
func planArg(fs *flag.FlagSet) string {
	if fs.NArg() > 0 {
		return fs.Arg(0)
	}
	return brand.DefaultPlanPath()
}

func setVerbose(on bool) {
	if on {
		logging.Default().SetLevel(logging.LevelDebug)
	}
}

// fail exits with 2 for plan validation failures and 1 for everything
// else, so scripts can tell a bad plan from a failed run.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var verrs plan.ValidationErrors
	if errors.As(err, &verrs) {
		os.Exit(2)
	}
	os.Exit(1)
}

func printUsage() {
	fmt.Printf("%s - %s\n\n", brand.Name, brand.Description)
	fmt.Printf("Usage: %s <command> [options] [plan-file]\n\n", brand.BinaryName)
	fmt.Println("Commands:")
	fmt.Println("  apply     Probe the device and apply the plan")
	fmt.Println("  preview   Print the commands a run would issue")
	fmt.Println("  export    Render the plan as a shell script")
	fmt.Println("  check     Validate the plan file")
	fmt.Println("  detect    Report the detected hardware")
	fmt.Println("  diff      Compare the plan against an exported script")
	fmt.Println("  version   Print the version")
	fmt.Println()
	fmt.Printf("The plan file defaults to %s.\n", brand.DefaultPlanPath())
}
