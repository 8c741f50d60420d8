package orchestrator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrtforge/internal/bridge"
	"wrtforge/internal/hardware"
	"wrtforge/internal/plan"
	"wrtforge/internal/roles"
	"wrtforge/internal/uci"
)

func testHardware() *hardware.Info {
	return &hardware.Info{
		Mode:         hardware.ModeDSA,
		WANInterface: "eth0",
		LANPorts:     []string{"lan1", "lan2", "lan3"},
	}
}

func testPlan() *plan.Plan {
	p := &plan.Plan{
		Proxy: &plan.Proxy{SideRouterIP: "192.168.1.2"},
		Networks: []*plan.Network{
			{Name: "lan", VLANID: 1, Role: "proxy", Wifi: &plan.Wifi{SSID: "Home"}},
			{Name: "work", VLANID: 10, Role: "clean"},
			{Name: "iot", VLANID: 30, Role: "isolate", Wifi: &plan.Wifi{SSID: "IoT-Smart"}},
		},
	}
	p.Normalize()
	return p
}

func newEngine(opts ...Option) *Engine {
	return New(bridge.NewDSA(), roles.NewRegistry(), opts...)
}

// fixedRand cycles through a fixed byte pattern so generated passwords
// are deterministic without weakening the production path.
type fixedRand struct{ n byte }

func (f *fixedRand) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = f.n % 61
		f.n += 7
	}
	return len(p), nil
}

func TestRunEmitsFullSequence(t *testing.T) {
	rec := &uci.Recorder{}
	creds, err := newEngine().Run(testPlan(), testHardware(), rec)
	require.NoError(t, err)

	lines := rec.Lines()

	// Bridge base and bindings.
	assert.Contains(t, lines, "uci set network.lan_dev.vlan_filtering='1'")
	assert.Contains(t, lines, "uci set network.vlan1='bridge-vlan'")
	assert.Contains(t, lines, "uci set network.vlan10='bridge-vlan'")
	assert.Contains(t, lines, "uci set network.vlan30='bridge-vlan'")

	// Interfaces, DHCP, firewall, wireless.
	assert.Contains(t, lines, "uci set network.work.device='br-lan.10'")
	assert.Contains(t, lines, "uci set dhcp.work.interface='work'")
	assert.Contains(t, lines, "uci set firewall.work='zone'")
	assert.Contains(t, lines, "uci set wireless.wifi_iot.ssid='IoT-Smart'")

	// One credential per wireless network, in plan order.
	require.Len(t, creds, 2)
	assert.Equal(t, "Home", creds[0].SSID)
	assert.Equal(t, "IoT-Smart", creds[1].SSID)
}

func TestRunSingleTrailingCommit(t *testing.T) {
	rec := &uci.Recorder{}
	_, err := newEngine().Run(testPlan(), testHardware(), rec)
	require.NoError(t, err)

	commits := 0
	for _, c := range rec.Commands {
		if c.Op == uci.OpCommit {
			commits++
		}
	}
	assert.Equal(t, 1, commits)
	assert.Equal(t, uci.OpCommit, rec.Commands[len(rec.Commands)-1].Op, "commit must be the last command")
}

func TestRunOrderingWithinNetwork(t *testing.T) {
	rec := &uci.Recorder{}
	_, err := newEngine().Run(testPlan(), testHardware(), rec)
	require.NoError(t, err)

	index := func(line string) int {
		for i, l := range rec.Lines() {
			if l == line {
				return i
			}
		}
		t.Fatalf("line %q not emitted", line)
		return -1
	}

	bind := index("uci set network.vlan10='bridge-vlan'")
	iface := index("uci set network.work.device='br-lan.10'")
	dhcp := index("uci set dhcp.work='dhcp'")
	zone := index("uci set firewall.work='zone'")

	assert.Less(t, bind, iface, "binding precedes the interface")
	assert.Less(t, iface, dhcp, "interface precedes DHCP")
	assert.Less(t, dhcp, zone, "DHCP precedes the firewall zone")
}

func TestRunValidationFailureEmitsNothing(t *testing.T) {
	p := &plan.Plan{
		Networks: []*plan.Network{
			{Name: "a", VLANID: 3, Role: "clean"},
			{Name: "b", VLANID: 3, Role: "clean"},
		},
	}
	p.Normalize()

	rec := &uci.Recorder{}
	_, err := newEngine().Run(p, testHardware(), rec)
	require.Error(t, err)

	var verrs plan.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Error(), "vlan_id")
	assert.Empty(t, rec.Commands, "validation failure must precede any emission")
}

func TestRunProxyGatewayScenario(t *testing.T) {
	rec := &uci.Recorder{}
	_, err := newEngine().Run(testPlan(), testHardware(), rec)
	require.NoError(t, err)

	assert.Contains(t, rec.Lines(), "uci add_list dhcp.lan.dhcp_option='3,192.168.1.2'")
}

func TestRunCleanScenario(t *testing.T) {
	rec := &uci.Recorder{}
	_, err := newEngine().Run(testPlan(), testHardware(), rec)
	require.NoError(t, err)

	assert.Contains(t, rec.Lines(), "uci add_list dhcp.work.dhcp_option='6,"+roles.PublicDNS+"'")
	for _, line := range rec.Lines() {
		assert.NotContains(t, line, "dhcp.work.dhcp_option='3,")
	}
}

func TestRunIsolateScenario(t *testing.T) {
	rec := &uci.Recorder{}
	_, err := newEngine().Run(testPlan(), testHardware(), rec)
	require.NoError(t, err)

	lines := rec.Lines()
	assert.Contains(t, lines, "uci set firewall.iot_deny_lan.dest='lan'")
	assert.Contains(t, lines, "uci set firewall.iot_deny_work.dest='work'")
	assert.Contains(t, lines, "uci set firewall.iot_deny_mgmt.dest_port='22 80 443'")
}

func TestRunDefaultDerivation(t *testing.T) {
	p := &plan.Plan{Networks: []*plan.Network{{Name: "five", VLANID: 5, Role: "clean"}}}
	p.Normalize()

	rec := &uci.Recorder{}
	_, err := newEngine().Run(p, testHardware(), rec)
	require.NoError(t, err)

	assert.Contains(t, rec.Lines(), "uci set network.five.ipaddr='192.168.5.1'")
	assert.Contains(t, rec.Lines(), "uci set network.five.netmask='255.255.255.0'")
}

func TestRunDryRunExportParity(t *testing.T) {
	rec := &uci.Recorder{}
	_, err := newEngine(WithRandom(&fixedRand{})).Run(testPlan(), testHardware(), rec)
	require.NoError(t, err)

	script := uci.NewScript()
	_, err = newEngine(WithRandom(&fixedRand{})).Run(testPlan(), testHardware(), script)
	require.NoError(t, err)

	require.Equal(t, len(rec.Commands), len(script.Commands))
	for i := range rec.Commands {
		assert.Equal(t, rec.Commands[i], script.Commands[i])
	}

	// Every dry-run line appears verbatim in the script body.
	body := script.String()
	for _, line := range rec.Lines() {
		assert.Contains(t, body, line+"\n")
	}
}

func TestRunIdempotentRebind(t *testing.T) {
	rec := &uci.Recorder{}
	engine := newEngine(WithRandom(&fixedRand{}))
	p := testPlan()

	_, err := engine.Run(p, testHardware(), rec)
	require.NoError(t, err)
	_, err = engine.Run(p, testHardware(), rec)
	require.NoError(t, err)

	// The cumulative stream must define each VLAN filter entry once.
	defines := 0
	for _, line := range rec.Lines() {
		if line == "uci set network.vlan10='bridge-vlan'" {
			defines++
		}
	}
	assert.Equal(t, 1, defines, "re-running an unchanged plan must not duplicate VLAN filter entries")
}

func TestRunGeneratedPasswordsDifferAcrossRuns(t *testing.T) {
	creds1, err := newEngine().Run(testPlan(), testHardware(), &uci.Recorder{})
	require.NoError(t, err)
	creds2, err := newEngine().Run(testPlan(), testHardware(), &uci.Recorder{})
	require.NoError(t, err)

	require.Len(t, creds1, 2)
	require.Len(t, creds2, 2)
	assert.NotEqual(t, creds1[0].Password, creds2[0].Password)
}

func TestRunWithoutWireless(t *testing.T) {
	rec := &uci.Recorder{}
	creds, err := newEngine(WithoutWireless()).Run(testPlan(), testHardware(), rec)
	require.NoError(t, err)

	assert.Empty(t, creds)
	for _, line := range rec.Lines() {
		assert.False(t, strings.HasPrefix(line, "uci set wireless."), "unexpected wireless command %q", line)
	}
}

// haltingSink fails the first command addressing a given path, the way
// a live store rejects a bad section.
type haltingSink struct {
	uci.Recorder
	failPath string
}

func (h *haltingSink) Emit(cmd uci.Command) error {
	if cmd.Path() == h.failPath {
		return &uci.ExecError{Cmd: cmd, Err: assert.AnError}
	}
	return h.Recorder.Emit(cmd)
}

func TestRunHaltsOnSinkFailureBeforeCommit(t *testing.T) {
	sink := &haltingSink{failPath: "firewall.work"}
	_, err := newEngine().Run(testPlan(), testHardware(), sink)

	require.Error(t, err)
	var execErr *uci.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, err.Error(), "firewall.work")

	for _, c := range sink.Commands {
		assert.NotEqual(t, uci.OpCommit, c.Op, "nothing may be committed after a failure")
	}
}

func TestAllocatePorts(t *testing.T) {
	p := testPlan()
	alloc := AllocatePorts(p, testHardware())

	// One untagged port per network in plan order, leftovers to VLAN 1.
	assert.Equal(t, []string{"lan1"}, alloc["lan"][:1])
	assert.Equal(t, []string{"lan2"}, alloc["work"])
	assert.Equal(t, []string{"lan3"}, alloc["iot"])
}

func TestAllocatePortsLeftoversJoinVLAN1(t *testing.T) {
	p := &plan.Plan{Networks: []*plan.Network{
		{Name: "lan", VLANID: 1, Role: "clean"},
	}}
	p.Normalize()

	alloc := AllocatePorts(p, testHardware())
	assert.Equal(t, []string{"lan1", "lan2", "lan3"}, alloc["lan"])
}

func TestAllocatePortsExplicitBindingWins(t *testing.T) {
	p := &plan.Plan{Networks: []*plan.Network{
		{Name: "lan", VLANID: 1, Role: "clean", Ports: []string{"lan3", "lan1:t"}},
		{Name: "iot", VLANID: 30, Role: "isolate"},
	}}
	p.Normalize()

	alloc := AllocatePorts(p, testHardware())
	assert.Equal(t, []string{"lan3", "lan1:t"}, alloc["lan"], "explicit ports pass through verbatim")
	assert.Equal(t, []string{"lan1"}, alloc["iot"])
}

func TestAllocatePortsExhaustedPoolMeansWirelessOnly(t *testing.T) {
	hw := &hardware.Info{Mode: hardware.ModeDSA, LANPorts: []string{"lan1"}}
	p := &plan.Plan{Networks: []*plan.Network{
		{Name: "a", VLANID: 2, Role: "clean"},
		{Name: "b", VLANID: 3, Role: "clean"},
	}}
	p.Normalize()

	alloc := AllocatePorts(p, hw)
	assert.Equal(t, []string{"lan1"}, alloc["a"])
	_, ok := alloc["b"]
	assert.False(t, ok)
}

func TestAllocatePortsSwconfigUsesChipNumbers(t *testing.T) {
	hw := &hardware.Info{
		Mode: hardware.ModeSwconfig,
		Switch: &hardware.SwitchInfo{
			Name: "switch0", CPUPort: 6, CPUInterface: "eth0", WANPort: 5,
			LANPorts: []int{1, 2, 3, 4},
		},
	}
	p := testPlan()

	alloc := AllocatePorts(p, hw)
	assert.Equal(t, []string{"2"}, alloc["work"])
}
