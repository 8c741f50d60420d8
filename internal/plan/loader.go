package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	yaml "gopkg.in/yaml.v2"
)

// LoadFile loads a plan from disk, picking the format by extension:
// .yaml/.yml use the YAML schema, everything else is parsed as HCL.
// The returned plan is already normalized but not yet validated.
func LoadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	var p *Plan
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = ParseYAML(data)
	default:
		p, err = ParseHCL(path, data)
	}
	if err != nil {
		return nil, err
	}

	p.Normalize()
	return p, nil
}

// ParseHCL decodes the HCL plan form. The eval context exposes `auto`
// so a wifi block can write `password = auto` instead of the raw
// marker string.
func ParseHCL(filename string, data []byte) (*Plan, error) {
	var p Plan
	if err := hclsimple.Decode(filename, data, evalContext(), &p); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	return &p, nil
}

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"auto": cty.StringVal(AutoGenerate),
		},
	}
}

// The YAML schema mirrors the HCL one, with networks as a list. The
// deprecated top-level `global` block is accepted as an alias for
// `proxy` so older plan files keep working.
type yamlPlan struct {
	Proxy    *yamlProxy     `yaml:"proxy"`
	Global   *yamlGlobal    `yaml:"global"`
	Hardware *yamlHardware  `yaml:"hardware"`
	Networks []*yamlNetwork `yaml:"networks"`
}

type yamlProxy struct {
	SideRouterIP string `yaml:"side_router_ip"`
	DHCPMode     string `yaml:"proxy_dhcp_mode"`
}

type yamlGlobal struct {
	SideRouterIP string `yaml:"side_router_ip"`
	MainRouterIP string `yaml:"main_router_ip"`
	DHCPMode     string `yaml:"proxy_dhcp_mode"`
}

type yamlNetwork struct {
	Name    string    `yaml:"name"`
	VLANID  int       `yaml:"vlan_id"`
	Role    string    `yaml:"role"`
	Subnet  string    `yaml:"subnet"`
	Netmask string    `yaml:"netmask"`
	Alias   string    `yaml:"alias"`
	Ports   []string  `yaml:"ports"`
	Wifi    *yamlWifi `yaml:"wifi"`
}

type yamlWifi struct {
	SSID     string `yaml:"ssid"`
	Password string `yaml:"password"`
}

type yamlHardware struct {
	Mode         string      `yaml:"mode"`
	WANInterface string      `yaml:"wan_interface"`
	LANPorts     []string    `yaml:"lan_ports"`
	Switch       *yamlSwitch `yaml:"switch"`
}

type yamlSwitch struct {
	Name         string `yaml:"name"`
	CPUPort      int    `yaml:"cpu_port"`
	CPUInterface string `yaml:"cpu_interface"`
	WANPort      int    `yaml:"wan_port"`
	LANPorts     []int  `yaml:"lan_ports"`
}

// ParseYAML decodes the YAML plan form.
func ParseYAML(data []byte) (*Plan, error) {
	var raw yamlPlan
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}

	p := &Plan{}

	switch {
	case raw.Proxy != nil:
		p.Proxy = &Proxy{
			SideRouterIP: raw.Proxy.SideRouterIP,
			DHCPMode:     raw.Proxy.DHCPMode,
		}
	case raw.Global != nil:
		ip := raw.Global.SideRouterIP
		if ip == "" {
			ip = raw.Global.MainRouterIP
		}
		if ip == "" {
			ip = "192.168.1.2"
		}
		p.Proxy = &Proxy{
			SideRouterIP: ip,
			DHCPMode:     raw.Global.DHCPMode,
		}
	}

	if raw.Hardware != nil {
		p.Hardware = &Hardware{
			Mode:         raw.Hardware.Mode,
			WANInterface: raw.Hardware.WANInterface,
			LANPorts:     raw.Hardware.LANPorts,
		}
		if raw.Hardware.Switch != nil {
			p.Hardware.Switch = &Switch{
				Name:         raw.Hardware.Switch.Name,
				CPUPort:      raw.Hardware.Switch.CPUPort,
				CPUInterface: raw.Hardware.Switch.CPUInterface,
				WANPort:      raw.Hardware.Switch.WANPort,
				LANPorts:     raw.Hardware.Switch.LANPorts,
			}
		}
	}

	for _, n := range raw.Networks {
		net := &Network{
			Name:    n.Name,
			VLANID:  n.VLANID,
			Role:    n.Role,
			Subnet:  n.Subnet,
			Netmask: n.Netmask,
			Alias:   n.Alias,
			Ports:   n.Ports,
		}
		if n.Wifi != nil {
			net.Wifi = &Wifi{SSID: n.Wifi.SSID, Password: n.Wifi.Password}
		}
		p.Networks = append(p.Networks, net)
	}

	return p, nil
}
