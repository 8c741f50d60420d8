package cmd

import (
	"fmt"
	"strings"

	"wrtforge/internal/hardware"
	"wrtforge/internal/uci"
)

// RunDetect probes the live device and reports the hardware picture the
// other verbs would compile against.
func RunDetect() error {
	runner := &uci.RealCommandRunner{}
	hw := hardware.Probe(runner)

	fmt.Printf("Mode: %s\n", hw.Mode)
	fmt.Printf("WAN interface: %s\n", hw.WANInterface)
	if hw.Switch != nil {
		sw := hw.Switch
		fmt.Printf("Switch: %s\n", sw.Name)
		fmt.Printf("CPU port: %d (%s)\n", sw.CPUPort, sw.CPUInterface)
		fmt.Printf("WAN port: %d\n", sw.WANPort)
		fmt.Printf("LAN ports: %v\n", sw.LANPorts)
		return nil
	}
	fmt.Printf("LAN ports: %s\n", strings.Join(hw.LANPorts, " "))
	return nil
}
