package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"wrtforge/internal/hardware"
	"wrtforge/internal/uci"
)

// RunDiff compares the commands the plan compiles to against a
// previously exported script. Header comments and generated wireless
// keys are stripped on both sides, otherwise every run would differ.
func RunDiff(planFile, scriptPath string, mode hardware.Mode) error {
	p, err := loadPlan(planFile)
	if err != nil {
		return err
	}

	hw := planHardware(p, mode)
	script := uci.NewScript()
	if _, err := newEngine(hw).Run(p, hw, script); err != nil {
		return err
	}

	existing, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	generated := stripNoise(script.String())
	recorded := stripNoise(string(existing))

	if generated == recorded {
		fmt.Println("No changes detected.")
		return nil
	}

	fmt.Printf("Plan differs from %s:\n", scriptPath)
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(recorded),
		B:        difflib.SplitLines(generated),
		FromFile: scriptPath,
		ToFile:   "generated",
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	fmt.Print(text)

	return fmt.Errorf("plan differs from exported script")
}

// stripNoise removes lines that legitimately vary between runs: the
// shebang, header comments, blank lines, the set -e guard and wireless
// key assignments.
func stripNoise(script string) string {
	var kept []string
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"), trimmed == "set -e":
			continue
		case strings.HasPrefix(trimmed, "uci set wireless.") && strings.Contains(trimmed, ".key="):
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n")
}
