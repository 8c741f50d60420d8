package bridge

import (
	"fmt"

	"wrtforge/internal/hardware"
	"wrtforge/internal/plan"
	"wrtforge/internal/uci"
)

// BridgeDevice is the software bridge every DSA network hangs off.
const BridgeDevice = "br-lan"

// DSA expresses VLANs as bridge-vlan filter entries on a software
// bridge; interfaces bind to br-lan.<vid>.
type DSA struct {
	baseDone bool
	bound    map[int]bool
}

// NewDSA creates the modern-bridge strategy.
func NewDSA() *DSA {
	return &DSA{bound: make(map[int]bool)}
}

func (d *DSA) Name() string { return "dsa" }

func (d *DSA) InterfaceName(vlanID int) string {
	return fmt.Sprintf("%s.%d", BridgeDevice, vlanID)
}

// EnsureBase creates the bridge device with VLAN filtering enabled and
// all LAN ports as members.
func (d *DSA) EnsureBase(sink uci.Sink, hw *hardware.Info) error {
	if d.baseDone {
		return nil
	}

	cmds := []uci.Command{
		uci.DefineSection("network", "lan_dev", "device"),
		uci.Set("network", "lan_dev", "name", BridgeDevice),
		uci.Set("network", "lan_dev", "type", "bridge"),
	}
	for _, port := range hw.LANPorts {
		cmds = append(cmds, uci.AddList("network", "lan_dev", "ports", port))
	}
	cmds = append(cmds, uci.Set("network", "lan_dev", "vlan_filtering", "1"))

	for _, c := range cmds {
		if err := sink.Emit(c); err != nil {
			return err
		}
	}
	d.baseDone = true
	return nil
}

// BindVLAN adds the VLAN id to the bridge's filter list. The section is
// named after the id, so re-applying a plan updates in place instead of
// stacking duplicate entries.
func (d *DSA) BindVLAN(sink uci.Sink, net *plan.Network, ports []string) error {
	if d.bound[net.VLANID] {
		return nil
	}

	section := fmt.Sprintf("vlan%d", net.VLANID)
	cmds := []uci.Command{
		uci.DefineSection("network", section, "bridge-vlan"),
		uci.Set("network", section, "device", BridgeDevice),
		uci.Set("network", section, "vlan", fmt.Sprintf("%d", net.VLANID)),
	}
	for _, port := range ports {
		cmds = append(cmds, uci.AddList("network", section, "ports", port))
	}

	for _, c := range cmds {
		if err := sink.Emit(c); err != nil {
			return err
		}
	}
	d.bound[net.VLANID] = true
	return nil
}

// ConfigureInterface binds the logical interface to br-lan.<vid>.
func (d *DSA) ConfigureInterface(sink uci.Sink, net *plan.Network) error {
	name := net.Name
	cmds := []uci.Command{
		uci.DefineSection("network", name, "interface"),
		uci.Set("network", name, "device", d.InterfaceName(net.VLANID)),
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
