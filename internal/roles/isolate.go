package roles

import (
	"wrtforge/internal/plan"
	"wrtforge/internal/sections"
	"wrtforge/internal/uci"
)

// ManagementPorts are the router services an isolated network must not
// reach: ssh and the web UI.
const ManagementPorts = "22 80 443"

// Isolate allows a network to reach the internet and nothing else:
// explicit REJECT rules toward every other LAN zone and toward the
// router's own management ports. The explicit rules survive a later
// zone opening its forward policy, which is the point.
type Isolate struct{}

func (i *Isolate) ConfigureDHCP(uci.Sink, *plan.Network, *plan.Proxy) error {
	// Standard pool: gateway and DNS stay on the network's own address.
	return nil
}

func (i *Isolate) ConfigureFirewall(sink uci.Sink, zone string, net *plan.Network, peers []*plan.Network) error {
	for _, peer := range peers {
		if peer.Name == net.Name {
			continue
		}
		section := zone + "_deny_" + peer.Name
		if err := sections.DenyForward(sink, section, zone, peer.Name); err != nil {
			return err
		}
	}
	return sections.DenyInputPorts(sink, zone+"_deny_mgmt", zone, ManagementPorts)
}
