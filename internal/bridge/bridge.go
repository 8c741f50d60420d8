// Package bridge holds the strategies that express "this VLAN belongs
// to this network" in the vocabulary of the two switching back-ends.
// Binding is a pure topology operation: a strategy never knows which
// access role will use the interfaces it creates.
package bridge

import (
	"wrtforge/internal/hardware"
	"wrtforge/internal/plan"
	"wrtforge/internal/uci"
)

// Mode is the bridging strategy interface.
type Mode interface {
	// Name identifies the strategy in logs and summaries.
	Name() string
	// InterfaceName derives the logical device name for a VLAN id.
	InterfaceName(vlanID int) string
	// EnsureBase emits the shared bridge or switch-chip sections.
	// Safe to call repeatedly; only the first call emits.
	EnsureBase(sink uci.Sink, hw *hardware.Info) error
	// BindVLAN emits the VLAN membership entry for a network. The
	// ports list holds the untagged member ports allocated to it
	// (a ":t" suffix marks a tagged member). Add-if-absent: binding
	// the same VLAN id twice emits nothing the second time.
	BindVLAN(sink uci.Sink, net *plan.Network, ports []string) error
	// ConfigureInterface emits the logical interface section bound to
	// InterfaceName(net.VLANID): address, netmask, device reference.
	ConfigureInterface(sink uci.Sink, net *plan.Network) error
}

// New selects the strategy matching the resolved hardware.
func New(hw *hardware.Info) Mode {
	if hw.Mode == hardware.ModeSwconfig && hw.Switch != nil {
		return NewSwconfig(hw.Switch)
	}
	return NewDSA()
}
