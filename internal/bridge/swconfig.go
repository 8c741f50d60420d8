package bridge

import (
	"fmt"
	"strings"

	"wrtforge/internal/hardware"
	"wrtforge/internal/plan"
	"wrtforge/internal/uci"
)

// Swconfig expresses VLANs as switch_vlan table entries on a dedicated
// switch chip; interfaces bind to <cpu-interface>.<vid> through a
// bridge-type interface section.
type Swconfig struct {
	sw       *hardware.SwitchInfo
	baseDone bool
	bound    map[int]bool
}

// NewSwconfig creates the legacy-switch strategy for the given chip.
func NewSwconfig(sw *hardware.SwitchInfo) *Swconfig {
	return &Swconfig{sw: sw, bound: make(map[int]bool)}
}

func (s *Swconfig) Name() string { return "swconfig" }

func (s *Swconfig) InterfaceName(vlanID int) string {
	return fmt.Sprintf("%s.%d", s.sw.CPUInterface, vlanID)
}

// EnsureBase resets the switch chip and enables VLAN tagging.
func (s *Swconfig) EnsureBase(sink uci.Sink, _ *hardware.Info) error {
	if s.baseDone {
		return nil
	}

	cmds := []uci.Command{
		uci.DefineSection("network", s.sw.Name, "switch"),
		uci.Set("network", s.sw.Name, "name", s.sw.Name),
		uci.Set("network", s.sw.Name, "reset", "1"),
		uci.Set("network", s.sw.Name, "enable_vlan", "1"),
	}
	for _, c := range cmds {
		if err := sink.Emit(c); err != nil {
			return err
		}
	}
	s.baseDone = true
	return nil
}

// BindVLAN writes the switch_vlan entry mapping the VLAN id to the
// tagged CPU port plus its allocated untagged LAN ports. Named per id,
// so re-applying updates the entry instead of appending another one.
func (s *Swconfig) BindVLAN(sink uci.Sink, net *plan.Network, ports []string) error {
	if s.bound[net.VLANID] {
		return nil
	}

	tokens := make([]string, 0, len(ports)+1)
	for _, p := range ports {
		tokens = append(tokens, switchPortToken(p))
	}
	tokens = append(tokens, fmt.Sprintf("%dt", s.sw.CPUPort))

	section := fmt.Sprintf("vlan%d", net.VLANID)
	cmds := []uci.Command{
		uci.DefineSection("network", section, "switch_vlan"),
		uci.Set("network", section, "device", s.sw.Name),
		uci.Set("network", section, "vlan", fmt.Sprintf("%d", net.VLANID)),
		uci.Set("network", section, "ports", strings.Join(tokens, " ")),
	}
	for _, c := range cmds {
		if err := sink.Emit(c); err != nil {
			return err
		}
	}
	s.bound[net.VLANID] = true
	return nil
}

// ConfigureInterface binds the logical interface to the CPU VLAN
// subinterface. Legacy firmware wants type=bridge plus ifname here
// instead of the DSA device reference.
func (s *Swconfig) ConfigureInterface(sink uci.Sink, net *plan.Network) error {
	name := net.Name
	cmds := []uci.Command{
		uci.DefineSection("network", name, "interface"),
		uci.Set("network", name, "type", "bridge"),
		uci.Set("network", name, "ifname", s.InterfaceName(net.VLANID)),
		uci.Set("network", name, "proto", "static"),
		uci.Set("network", name, "ipaddr", net.Subnet),
		uci.Set("network", name, "netmask", net.Netmask),
	}
	for _, c := range cmds {
		if err := sink.Emit(c); err != nil {
			return err
		}
	}
	return nil
}

// switchPortToken converts an allocated port entry to switch_vlan
// spelling: "3" stays untagged, "3:t" becomes "3t".
func switchPortToken(entry string) string {
	if p, ok := strings.CutSuffix(entry, ":t"); ok {
		return p + "t"
	}
	return entry
}
