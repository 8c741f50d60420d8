package roles

import (
	"wrtforge/internal/logging"
	"wrtforge/internal/plan"
	"wrtforge/internal/sections"
	"wrtforge/internal/uci"
)

var log = logging.Default().WithComponent("roles")

// Proxy routes a network's traffic through a side router. In the
// default "main" DHCP mode this router keeps serving leases but
// advertises the side router as gateway and DNS; in "side" mode the
// gateway stays local and only DNS is forwarded.
type Proxy struct{}

func (p *Proxy) ConfigureDHCP(sink uci.Sink, net *plan.Network, proxy *plan.Proxy) error {
	if proxy == nil {
		log.Warn("proxy role without a proxy block, leaving DHCP untouched", "network", net.Name)
		return nil
	}

	side := proxy.SideRouterIP
	if proxy.DHCPMode == plan.DHCPModeMain {
		if err := sections.DHCPOption(sink, net.Name, "3,"+side); err != nil {
			return err
		}
		if err := sections.DHCPOption(sink, net.Name, "6,"+side); err != nil {
			return err
		}
		return sink.Emit(uci.Set("dhcp", net.Name, "force", "1"))
	}

	// Side mode: the side router owns the gateway role, this router
	// only steers DNS toward it.
	return sections.DHCPOption(sink, net.Name, "6,"+side)
}

func (p *Proxy) ConfigureFirewall(uci.Sink, string, *plan.Network, []*plan.Network) error {
	// WAN forwarding from the zone baseline is all a proxied network
	// needs; cross-zone traffic stays rejected implicitly.
	return nil
}
