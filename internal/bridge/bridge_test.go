package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrtforge/internal/hardware"
	"wrtforge/internal/plan"
	"wrtforge/internal/uci"
)

func dsaHardware() *hardware.Info {
	return &hardware.Info{
		Mode:         hardware.ModeDSA,
		WANInterface: "eth0",
		LANPorts:     []string{"lan1", "lan2"},
	}
}

func swconfigHardware() *hardware.Info {
	return &hardware.Info{
		Mode:         hardware.ModeSwconfig,
		WANInterface: "eth0",
		Switch: &hardware.SwitchInfo{
			Name:         "switch0",
			CPUPort:      6,
			CPUInterface: "eth0",
			WANPort:      5,
			LANPorts:     []int{1, 2, 3, 4},
		},
	}
}

func TestNewSelectsStrategy(t *testing.T) {
	assert.Equal(t, "dsa", New(dsaHardware()).Name())
	assert.Equal(t, "swconfig", New(swconfigHardware()).Name())

	// Swconfig mode without chip details cannot bind anything useful.
	assert.Equal(t, "dsa", New(&hardware.Info{Mode: hardware.ModeSwconfig}).Name())
}

func TestInterfaceNames(t *testing.T) {
	assert.Equal(t, "br-lan.30", NewDSA().InterfaceName(30))
	assert.Equal(t, "eth0.30", NewSwconfig(swconfigHardware().Switch).InterfaceName(30))
}

func TestDSABindVLAN(t *testing.T) {
	rec := &uci.Recorder{}
	d := NewDSA()
	net := &plan.Network{Name: "iot", VLANID: 30, Subnet: "192.168.30.1", Netmask: "255.255.255.0"}

	require.NoError(t, d.EnsureBase(rec, dsaHardware()))
	require.NoError(t, d.BindVLAN(rec, net, []string{"lan2"}))
	require.NoError(t, d.ConfigureInterface(rec, net))

	lines := rec.Lines()
	assert.Contains(t, lines, "uci set network.lan_dev.vlan_filtering='1'")
	assert.Contains(t, lines, "uci set network.vlan30='bridge-vlan'")
	assert.Contains(t, lines, "uci set network.vlan30.vlan='30'")
	assert.Contains(t, lines, "uci add_list network.vlan30.ports='lan2'")
	assert.Contains(t, lines, "uci set network.iot.device='br-lan.30'")
	assert.Contains(t, lines, "uci set network.iot.proto='static'")
}

func TestDSABindIsAddIfAbsent(t *testing.T) {
	rec := &uci.Recorder{}
	d := NewDSA()
	net := &plan.Network{Name: "iot", VLANID: 30, Subnet: "192.168.30.1", Netmask: "255.255.255.0"}

	require.NoError(t, d.EnsureBase(rec, dsaHardware()))
	require.NoError(t, d.BindVLAN(rec, net, []string{"lan2"}))
	emitted := len(rec.Commands)

	require.NoError(t, d.EnsureBase(rec, dsaHardware()))
	require.NoError(t, d.BindVLAN(rec, net, []string{"lan2"}))

	assert.Equal(t, emitted, len(rec.Commands), "re-binding must not emit duplicate filter entries")
}

func TestSwconfigBindVLAN(t *testing.T) {
	rec := &uci.Recorder{}
	s := NewSwconfig(swconfigHardware().Switch)
	net := &plan.Network{Name: "guest", VLANID: 20, Subnet: "192.168.20.1", Netmask: "255.255.255.0"}

	require.NoError(t, s.EnsureBase(rec, swconfigHardware()))
	require.NoError(t, s.BindVLAN(rec, net, []string{"2"}))
	require.NoError(t, s.ConfigureInterface(rec, net))

	lines := rec.Lines()
	assert.Contains(t, lines, "uci set network.switch0.enable_vlan='1'")
	assert.Contains(t, lines, "uci set network.vlan20='switch_vlan'")
	assert.Contains(t, lines, "uci set network.vlan20.ports='2 6t'", "tagged CPU port plus untagged LAN port")
	assert.Contains(t, lines, "uci set network.guest.type='bridge'")
	assert.Contains(t, lines, "uci set network.guest.ifname='eth0.20'")
}

func TestSwconfigTaggedPortSpelling(t *testing.T) {
	rec := &uci.Recorder{}
	s := NewSwconfig(swconfigHardware().Switch)
	net := &plan.Network{Name: "trunk", VLANID: 40, Subnet: "192.168.40.1", Netmask: "255.255.255.0"}

	require.NoError(t, s.BindVLAN(rec, net, []string{"1", "2:t"}))

	assert.Contains(t, rec.Lines(), "uci set network.vlan40.ports='1 2t 6t'")
}

func TestEnsureBaseEmitsOnce(t *testing.T) {
	rec := &uci.Recorder{}
	s := NewSwconfig(swconfigHardware().Switch)

	require.NoError(t, s.EnsureBase(rec, swconfigHardware()))
	n := len(rec.Commands)
	require.NoError(t, s.EnsureBase(rec, swconfigHardware()))

	assert.Equal(t, n, len(rec.Commands))
}
