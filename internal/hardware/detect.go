package hardware

import (
	"strconv"
	"strings"

	"wrtforge/internal/logging"
	"wrtforge/internal/plan"
	"wrtforge/internal/uci"
)

var log = logging.Default().WithComponent("hardware")

// DetectMode decides the switching back-end from a configuration dump.
// It is total: inconclusive evidence falls back to DSA, which is what
// all current firmware ships with. Priority order matters - a legacy
// switch table wins over any bridge-vlan leftovers.
func DetectMode(evidence string) Mode {
	for _, line := range strings.Split(evidence, "\n") {
		if strings.HasSuffix(line, "=switch") || strings.HasSuffix(line, "=switch_vlan") {
			return ModeSwconfig
		}
	}
	if strings.Contains(evidence, "bridge-vlan") {
		return ModeDSA
	}
	// Inconclusive evidence: assume modern hardware.
	return ModeDSA
}

// LiveEvidence dumps the device's network configuration through the
// runner. An unreachable store yields empty evidence, which detection
// resolves to the DSA default.
func LiveEvidence(r uci.CommandRunner) string {
	return uci.Query(r, "show", "network")
}

// PlanEvidence renders the plan's hardware hints in the same dump
// vocabulary the live path produces, so the decision function stays
// identical for preview and export runs.
func PlanEvidence(p *plan.Plan) string {
	if p.Hardware == nil {
		return ""
	}
	if p.Hardware.Switch != nil || Mode(p.Hardware.Mode) == ModeSwconfig {
		return "network.@switch[0]=switch"
	}
	if Mode(p.Hardware.Mode) == ModeDSA {
		return "network.@bridge-vlan[0]=bridge-vlan"
	}
	return ""
}

// Probe inspects a live device and collects the full hardware picture.
func Probe(r uci.CommandRunner) *Info {
	return ProbeWithMode(r, ModeAuto)
}

// ProbeWithMode probes with a forced back-end, bypassing detection when
// the operator knows better than the evidence.
func ProbeWithMode(r uci.CommandRunner, mode Mode) *Info {
	if mode == ModeAuto {
		mode = DetectMode(LiveEvidence(r))
	}
	if mode == ModeSwconfig {
		return probeSwconfig(r)
	}
	return probeDSA(r)
}

func probeDSA(r uci.CommandRunner) *Info {
	wan := uci.Query(r, "get", "network.wan.device")
	if wan == "" {
		wan = uci.Query(r, "get", "network.wan.ifname")
	}
	if wan == "" {
		wan = "eth0"
	}

	ports := strings.Fields(uci.Query(r, "get", "network.@device[0].ports"))
	if len(ports) == 0 {
		ports = strings.Fields(uci.Query(r, "get", "network.lan_dev.ports"))
	}
	if len(ports) == 0 {
		log.Warn("could not probe LAN ports, assuming defaults", "ports", Defaults().LANPorts)
		ports = Defaults().LANPorts
	}

	log.Info("detected DSA hardware", "wan", wan, "lan_ports", strings.Join(ports, " "))
	return &Info{
		Mode:         ModeDSA,
		WANInterface: wan,
		LANPorts:     ports,
	}
}

func probeSwconfig(r uci.CommandRunner) *Info {
	name := uci.Query(r, "get", "network.@switch[0].name")
	if name == "" {
		name = "switch0"
	}

	wan := uci.Query(r, "get", "network.wan.ifname")
	if wan == "" {
		wan = "eth0"
	}

	// VLAN 1's port string carries the CPU port as its tagged token and
	// the LAN ports as the untagged remainder. Boards with
	// non-contiguous port numbering can be misread here; known
	// limitation of evidence-driven allocation.
	cpuPort := 0
	var lanPorts []int
	for _, token := range strings.Fields(uci.Query(r, "get", "network.@switch_vlan[0].ports")) {
		if strings.HasSuffix(token, "t") {
			if p, err := strconv.Atoi(strings.TrimSuffix(token, "t")); err == nil {
				cpuPort = p
			}
			continue
		}
		if p, err := strconv.Atoi(token); err == nil {
			lanPorts = append(lanPorts, p)
		}
	}

	wanPort := 5
	for _, token := range strings.Fields(uci.Query(r, "get", "network.@switch_vlan[1].ports")) {
		if !strings.HasSuffix(token, "t") {
			if p, err := strconv.Atoi(token); err == nil {
				wanPort = p
			}
		}
	}

	cpuIface := uci.Query(r, "get", "network.lan.ifname")
	if cpuIface == "" {
		cpuIface = wan
	}
	// Strip a .VID suffix: the base interface feeds every VLAN.
	if i := strings.IndexByte(cpuIface, '.'); i >= 0 {
		cpuIface = cpuIface[:i]
	}

	if len(lanPorts) == 0 {
		lanPorts = []int{1, 2, 3, 4}
	}

	log.Info("detected swconfig hardware", "switch", name, "cpu_port", cpuPort, "wan_port", wanPort)
	return &Info{
		Mode:         ModeSwconfig,
		WANInterface: wan,
		Switch: &SwitchInfo{
			Name:         name,
			CPUPort:      cpuPort,
			CPUInterface: cpuIface,
			WANPort:      wanPort,
			LANPorts:     lanPorts,
		},
	}
}
