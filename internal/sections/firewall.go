package sections

import (
	"wrtforge/internal/plan"
	"wrtforge/internal/uci"
)

// WANZone is the upstream zone every LAN zone forwards to.
const WANZone = "wan"

// FirewallZone emits the security zone for a network: accept local
// traffic, reject forwarding by default, masquerade upstream, and a
// named forwarding that opens the path to WAN. Anything stricter or
// looser is layered on by the role strategy.
func FirewallZone(sink uci.Sink, zone string, net *plan.Network) error {
	cmds := []uci.Command{
		uci.DefineSection("firewall", zone, "zone"),
		uci.Set("firewall", zone, "name", zone),
		uci.Set("firewall", zone, "network", net.Name),
		uci.Set("firewall", zone, "input", "ACCEPT"),
		uci.Set("firewall", zone, "output", "ACCEPT"),
		uci.Set("firewall", zone, "forward", "REJECT"),
		uci.Set("firewall", zone, "masq", "1"),
	}
	for _, c := range cmds {
		if err := sink.Emit(c); err != nil {
			return err
		}
	}
	return AllowForward(sink, zone+"_wan", zone, WANZone)
}

// AllowForward emits a named forwarding section from src to dest.
func AllowForward(sink uci.Sink, section, src, dest string) error {
	cmds := []uci.Command{
		uci.DefineSection("firewall", section, "forwarding"),
		uci.Set("firewall", section, "src", src),
		uci.Set("firewall", section, "dest", dest),
	}
	for _, c := range cmds {
		if err := sink.Emit(c); err != nil {
			return err
		}
	}
	return nil
}

// DenyForward emits an explicit REJECT rule for traffic forwarded from
// src to dest. Zones are isolated by the default forward policy
// already; this exists for roles that want the denial spelled out.
func DenyForward(sink uci.Sink, section, src, dest string) error {
	cmds := []uci.Command{
		uci.DefineSection("firewall", section, "rule"),
		uci.Set("firewall", section, "name", "deny-"+src+"-to-"+dest),
		uci.Set("firewall", section, "src", src),
		uci.Set("firewall", section, "dest", dest),
		uci.Set("firewall", section, "proto", "all"),
		uci.Set("firewall", section, "target", "REJECT"),
	}
	for _, c := range cmds {
		if err := sink.Emit(c); err != nil {
			return err
		}
	}
	return nil
}

// DenyInputPorts emits a REJECT rule for traffic from src addressed to
// the router itself on the given TCP ports.
func DenyInputPorts(sink uci.Sink, section, src, ports string) error {
	cmds := []uci.Command{
		uci.DefineSection("firewall", section, "rule"),
		uci.Set("firewall", section, "name", "deny-"+src+"-management"),
		uci.Set("firewall", section, "src", src),
		uci.Set("firewall", section, "proto", "tcp"),
		uci.Set("firewall", section, "dest_port", ports),
		uci.Set("firewall", section, "target", "REJECT"),
	}
	for _, c := range cmds {
		if err := sink.Emit(c); err != nil {
			return err
		}
	}
	return nil
}
