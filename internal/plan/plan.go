// Package plan holds the in-memory topology description: the global
// proxy settings, optional hardware hints, and the ordered list of
// per-network definitions. The plan is constructed once per run and is
// read-only afterwards.
package plan

import "fmt"

// AutoGenerate is the password marker that requests a random wireless
// key. In HCL plans it is exposed as the `auto` constant.
const AutoGenerate = "auto_generate"

// Proxy DHCP modes. In "main" mode this router serves DHCP but points
// clients at the side router; in "side" mode the side router serves
// DHCP itself and this router stays out of the way.
const (
	DHCPModeMain = "main"
	DHCPModeSide = "side"
)

// Plan is the validated topology description.
type Plan struct {
	Proxy    *Proxy     `hcl:"proxy,block"`
	Hardware *Hardware  `hcl:"hardware,block"`
	Networks []*Network `hcl:"network,block"`
}

// Proxy carries the global side-router parameters.
type Proxy struct {
	SideRouterIP string `hcl:"side_router_ip"`
	DHCPMode     string `hcl:"proxy_dhcp_mode,optional"`
}

// Network is a single VLAN network definition. Name doubles as the
// section identifier for every generated interface, dhcp and firewall
// section, so it must be unique and uci-safe.
type Network struct {
	Name    string   `hcl:"name,label"`
	VLANID  int      `hcl:"vlan_id"`
	Role    string   `hcl:"role"`
	Subnet  string   `hcl:"subnet,optional"`
	Netmask string   `hcl:"netmask,optional"`
	Alias   string   `hcl:"alias,optional"`
	Ports   []string `hcl:"ports,optional"`
	Wifi    *Wifi    `hcl:"wifi,block"`
}

// Wifi is the desired access-point configuration for a network.
type Wifi struct {
	SSID     string `hcl:"ssid"`
	Password string `hcl:"password,optional"`
}

// Hardware carries optional static detection evidence, used when no
// live device is available (preview and export runs).
type Hardware struct {
	Mode         string   `hcl:"mode,optional"`
	WANInterface string   `hcl:"wan_interface,optional"`
	LANPorts     []string `hcl:"lan_ports,optional"`
	Switch       *Switch  `hcl:"switch,block"`
}

// Switch describes a legacy switch chip in the hardware hints block.
type Switch struct {
	Name         string `hcl:"name,optional"`
	CPUPort      int    `hcl:"cpu_port,optional"`
	CPUInterface string `hcl:"cpu_interface,optional"`
	WANPort      int    `hcl:"wan_port,optional"`
	LANPorts     []int  `hcl:"lan_ports,optional"`
}

// Credential is a generated wireless secret, returned to the caller
// and never stored.
type Credential struct {
	Network  string
	SSID     string
	Password string
	Role     string
}

// Normalize fills derived defaults in place. It runs once, right after
// loading, so everything downstream can rely on the fields being set.
func (p *Plan) Normalize() {
	if p.Proxy != nil && p.Proxy.DHCPMode == "" {
		p.Proxy.DHCPMode = DHCPModeMain
	}
	for _, n := range p.Networks {
		if n.Subnet == "" {
			n.Subnet = fmt.Sprintf("192.168.%d.1", n.VLANID)
		}
		if n.Netmask == "" {
			n.Netmask = "255.255.255.0"
		}
		if n.Alias == "" {
			n.Alias = n.Name
		}
		if n.Wifi != nil && n.Wifi.Password == "" {
			n.Wifi.Password = AutoGenerate
		}
	}
}

// Find returns the network with the given name, or nil.
func (p *Plan) Find(name string) *Network {
	for _, n := range p.Networks {
		if n.Name == name {
			return n
		}
	}
	return nil
}
