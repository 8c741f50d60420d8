// Package hardware decides which switching back-end a device exposes
// and collects the physical details (WAN interface, LAN ports, switch
// chip geometry) the bridging strategies need.
package hardware

import (
	"fmt"

	"wrtforge/internal/plan"
)

// Mode is the switching abstraction a router's firmware uses.
type Mode string

const (
	// ModeAuto defers the decision to evidence-based detection.
	ModeAuto Mode = "auto"
	// ModeDSA is the modern model: VLAN filtering on a software bridge.
	ModeDSA Mode = "dsa"
	// ModeSwconfig is the legacy model: a VLAN table on a switch chip.
	ModeSwconfig Mode = "swconfig"
)

// ParseMode validates an explicit mode override from the command line.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeDSA, ModeSwconfig:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unsupported mode %q (expected %s, %s or %s)", s, ModeAuto, ModeDSA, ModeSwconfig)
	}
}

// SwitchInfo holds the switch chip parameters probed in swconfig mode.
type SwitchInfo struct {
	Name         string
	CPUPort      int
	CPUInterface string
	WANPort      int
	LANPorts     []int
}

// Info is the resolved hardware picture for one run.
type Info struct {
	Mode         Mode
	WANInterface string
	LANPorts     []string
	Switch       *SwitchInfo
}

// Defaults returns the assumption used when neither a live device nor
// plan hints are available: a small DSA board.
func Defaults() *Info {
	return &Info{
		Mode:         ModeDSA,
		WANInterface: "eth0",
		LANPorts:     []string{"eth1", "eth2"},
	}
}

// FromHints builds an Info from the plan's optional hardware block,
// falling back to Defaults for anything the block leaves out.
func FromHints(h *plan.Hardware) *Info {
	info := Defaults()
	if h == nil {
		return info
	}

	if h.WANInterface != "" {
		info.WANInterface = h.WANInterface
	}
	if len(h.LANPorts) > 0 {
		info.LANPorts = h.LANPorts
	}

	if h.Switch != nil || Mode(h.Mode) == ModeSwconfig {
		info.Mode = ModeSwconfig
		sw := &SwitchInfo{
			Name:         "switch0",
			CPUInterface: info.WANInterface,
			WANPort:      5,
			LANPorts:     []int{1, 2, 3, 4},
		}
		if h.Switch != nil {
			if h.Switch.Name != "" {
				sw.Name = h.Switch.Name
			}
			sw.CPUPort = h.Switch.CPUPort
			if h.Switch.CPUInterface != "" {
				sw.CPUInterface = h.Switch.CPUInterface
			}
			if h.Switch.WANPort != 0 {
				sw.WANPort = h.Switch.WANPort
			}
			if len(h.Switch.LANPorts) > 0 {
				sw.LANPorts = h.Switch.LANPorts
			}
		}
		info.Switch = sw
		info.LANPorts = nil
	}

	return info
}
