// Package sections holds stateless builders for the dhcp, wireless and
// firewall configuration sections. They shape commands from parameters
// that a role strategy has already decided; no policy lives here.
package sections

import (
	"wrtforge/internal/plan"
	"wrtforge/internal/uci"
)

// DHCP pool defaults shared by every network regardless of role.
const (
	DHCPStart     = "100"
	DHCPLimit     = "150"
	DHCPLeaseTime = "12h"
)

// DHCPServer emits the baseline DHCP pool for a network. Role-specific
// options (gateway and DNS overrides) are layered on afterwards by the
// role strategy.
func DHCPServer(sink uci.Sink, net *plan.Network) error {
	name := net.Name
	cmds := []uci.Command{
		uci.DefineSection("dhcp", name, "dhcp"),
		uci.Set("dhcp", name, "interface", name),
		uci.Set("dhcp", name, "start", DHCPStart),
		uci.Set("dhcp", name, "limit", DHCPLimit),
		uci.Set("dhcp", name, "leasetime", DHCPLeaseTime),
	}
	for _, c := range cmds {
		if err := sink.Emit(c); err != nil {
			return err
		}
	}
	return nil
}

// DHCPOption appends a numbered DHCP option to a network's pool.
// Option 3 overrides the gateway, option 6 the DNS servers.
func DHCPOption(sink uci.Sink, network, option string) error {
	return sink.Emit(uci.AddList("dhcp", network, "dhcp_option", option))
}
