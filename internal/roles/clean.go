package roles

import (
	"wrtforge/internal/plan"
	"wrtforge/internal/sections"
	"wrtforge/internal/uci"
)

// PublicDNS is the default resolver pair advertised to clean networks.
const PublicDNS = "223.5.5.5,114.114.114.114"

// Clean is a direct-to-WAN network: public resolvers, no gateway
// override, no cross-zone reach.
type Clean struct {
	DNS string
}

func (c *Clean) ConfigureDHCP(sink uci.Sink, net *plan.Network, _ *plan.Proxy) error {
	dns := c.DNS
	if dns == "" {
		dns = PublicDNS
	}
	return sections.DHCPOption(sink, net.Name, "6,"+dns)
}

func (c *Clean) ConfigureFirewall(uci.Sink, string, *plan.Network, []*plan.Network) error {
	return nil
}
