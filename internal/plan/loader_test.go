package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHCLPlan(t *testing.T) {
	src := `
proxy {
  side_router_ip = "192.168.1.2"
}

network "lan" {
  vlan_id = 1
  role    = "proxy"

  wifi {
    ssid     = "Home"
    password = auto
  }
}

network "iot" {
  vlan_id = 30
  role    = "isolate"
  subnet  = "10.30.0.1"
  netmask = "255.255.0.0"
}
`
	p, err := ParseHCL("plan.hcl", []byte(src))
	require.NoError(t, err)
	p.Normalize()

	require.NotNil(t, p.Proxy)
	assert.Equal(t, "192.168.1.2", p.Proxy.SideRouterIP)
	assert.Equal(t, DHCPModeMain, p.Proxy.DHCPMode, "dhcp mode defaults to main")

	require.Len(t, p.Networks, 2)

	lan := p.Networks[0]
	assert.Equal(t, "lan", lan.Name)
	assert.Equal(t, 1, lan.VLANID)
	require.NotNil(t, lan.Wifi)
	assert.Equal(t, AutoGenerate, lan.Wifi.Password, "auto constant resolves to the marker")

	iot := p.Networks[1]
	assert.Equal(t, "10.30.0.1", iot.Subnet)
	assert.Equal(t, "255.255.0.0", iot.Netmask)
	assert.Nil(t, iot.Wifi)
}

func TestParseHCLHardwareHints(t *testing.T) {
	src := `
hardware {
  mode = "swconfig"

  switch {
    name          = "switch0"
    cpu_port      = 6
    cpu_interface = "eth0"
    wan_port      = 5
    lan_ports     = [1, 2, 3, 4]
  }
}

network "lan" {
  vlan_id = 1
  role    = "clean"
}
`
	p, err := ParseHCL("plan.hcl", []byte(src))
	require.NoError(t, err)

	require.NotNil(t, p.Hardware)
	assert.Equal(t, "swconfig", p.Hardware.Mode)
	require.NotNil(t, p.Hardware.Switch)
	assert.Equal(t, 6, p.Hardware.Switch.CPUPort)
	assert.Equal(t, []int{1, 2, 3, 4}, p.Hardware.Switch.LANPorts)
}

func TestParseYAMLPlan(t *testing.T) {
	src := []byte(`
proxy:
  side_router_ip: "192.168.1.2"
  proxy_dhcp_mode: "side"
networks:
  - name: lan
    vlan_id: 1
    role: proxy
  - name: guest
    vlan_id: 20
    role: clean
    wifi:
      ssid: Guest
`)
	p, err := ParseYAML(src)
	require.NoError(t, err)
	p.Normalize()

	require.NotNil(t, p.Proxy)
	assert.Equal(t, DHCPModeSide, p.Proxy.DHCPMode)

	require.Len(t, p.Networks, 2)
	guest := p.Networks[1]
	require.NotNil(t, guest.Wifi)
	assert.Equal(t, AutoGenerate, guest.Wifi.Password, "absent password means auto-generation")
}

func TestParseYAMLLegacyGlobalBlock(t *testing.T) {
	src := []byte(`
global:
  main_router_ip: "192.168.1.3"
networks:
  - name: lan
    vlan_id: 1
    role: proxy
`)
	p, err := ParseYAML(src)
	require.NoError(t, err)

	require.NotNil(t, p.Proxy, "global block is accepted as a proxy alias")
	assert.Equal(t, "192.168.1.3", p.Proxy.SideRouterIP)
}

func TestNormalizeDerivesDefaults(t *testing.T) {
	p := &Plan{Networks: []*Network{{Name: "work", VLANID: 5, Role: "clean"}}}
	p.Normalize()

	n := p.Networks[0]
	assert.Equal(t, "192.168.5.1", n.Subnet)
	assert.Equal(t, "255.255.255.0", n.Netmask)
	assert.Equal(t, "work", n.Alias)
}
