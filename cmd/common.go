// Package cmd implements the command-line verbs. Each Run* function is
// a thin shell around the plan loader, the hardware resolver and the
// orchestration engine; the verbs differ only in where the hardware
// picture comes from and which sink consumes the commands.
package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"wrtforge/internal/bridge"
	"wrtforge/internal/hardware"
	"wrtforge/internal/orchestrator"
	"wrtforge/internal/plan"
	"wrtforge/internal/roles"
)

var (
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// loadPlan reads a plan file; the loader normalizes it.
func loadPlan(path string) (*plan.Plan, error) {
	return plan.LoadFile(path)
}

// planHardware resolves the hardware picture without touching a device:
// plan hints first, mode override second, DSA defaults last. Preview,
// export and diff runs all go through here so they agree with each
// other for the same plan.
func planHardware(p *plan.Plan, mode hardware.Mode) *hardware.Info {
	hints := p.Hardware
	if mode == hardware.ModeSwconfig && (hints == nil || hints.Switch == nil) {
		return hardware.FromHints(&plan.Hardware{Mode: string(hardware.ModeSwconfig)})
	}

	info := hardware.FromHints(hints)
	if mode == hardware.ModeDSA && info.Mode != hardware.ModeDSA {
		info = hardware.Defaults()
		if hints != nil && hints.WANInterface != "" {
			info.WANInterface = hints.WANInterface
		}
		if hints != nil && len(hints.LANPorts) > 0 {
			info.LANPorts = hints.LANPorts
		}
	}
	return info
}

// newEngine wires the strategy stack for a resolved hardware picture.
func newEngine(hw *hardware.Info, opts ...orchestrator.Option) *orchestrator.Engine {
	return orchestrator.New(bridge.New(hw), roles.NewRegistry(), opts...)
}

// printCredentials shows generated wireless secrets exactly once. They
// are never written to disk, so this output is the only copy.
func printCredentials(creds []plan.Credential) {
	if len(creds) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(styleWarn.Render("Generated wireless credentials (shown once, not stored):"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers("NETWORK", "SSID", "PASSWORD", "ROLE")
	for _, c := range creds {
		t.Row(c.Network, c.SSID, c.Password, c.Role)
	}
	fmt.Println(t)
}

func describeHardware(hw *hardware.Info) string {
	if hw.Switch != nil {
		return fmt.Sprintf("%s (switch %s, cpu port %d)", hw.Mode, hw.Switch.Name, hw.Switch.CPUPort)
	}
	return fmt.Sprintf("%s (wan %s)", hw.Mode, hw.WANInterface)
}
