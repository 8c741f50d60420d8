// Package orchestrator sequences a validated plan into the command
// stream: bridge base, then per network the VLAN binding, interface,
// DHCP, firewall zone and wireless sections, and one trailing commit.
package orchestrator

import (
	"io"
	"strconv"

	"wrtforge/internal/bridge"
	"wrtforge/internal/hardware"
	"wrtforge/internal/logging"
	"wrtforge/internal/plan"
	"wrtforge/internal/roles"
	"wrtforge/internal/sections"
	"wrtforge/internal/uci"
)

var log = logging.Default().WithComponent("engine")

// Engine drives one plan through the selected strategies into a sink.
type Engine struct {
	bridge       bridge.Mode
	registry     *roles.Registry
	wireless     *sections.Wireless
	skipWireless bool
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithRandom replaces the randomness source behind generated keys.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) { e.wireless.Rand = r }
}

// WithRadio targets a different physical radio than radio0.
func WithRadio(radio string) Option {
	return func(e *Engine) { e.wireless.Radio = radio }
}

// WithoutWireless skips wireless sections entirely, for devices that
// have no wireless subsystem.
func WithoutWireless() Option {
	return func(e *Engine) { e.skipWireless = true }
}

// New creates an engine bound to a bridging strategy and role registry.
func New(b bridge.Mode, registry *roles.Registry, opts ...Option) *Engine {
	e := &Engine{
		bridge:   b,
		registry: registry,
		wireless: sections.NewWireless(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run validates the plan and emits the full command sequence into the
// sink, returning the generated credentials in plan order. Validation
// happens first, so a failing plan causes zero emissions. The single
// trailing commit keeps an interrupted apply fully uncommitted.
func (e *Engine) Run(p *plan.Plan, hw *hardware.Info, sink uci.Sink) ([]plan.Credential, error) {
	if errs := plan.Validate(p, e.registry.Keys()); errs.HasErrors() {
		return nil, errs
	}

	allocation := AllocatePorts(p, hw)

	if err := e.bridge.EnsureBase(sink, hw); err != nil {
		return nil, err
	}

	var creds []plan.Credential
	for _, net := range p.Networks {
		role, err := e.registry.Get(net.Role)
		if err != nil {
			return nil, err
		}

		log.Info("compiling network", "name", net.Name, "vlan", net.VLANID, "role", net.Role)

		if err := e.bridge.BindVLAN(sink, net, allocation[net.Name]); err != nil {
			return nil, err
		}
		if err := e.bridge.ConfigureInterface(sink, net); err != nil {
			return nil, err
		}

		if err := sections.DHCPServer(sink, net); err != nil {
			return nil, err
		}
		if err := role.ConfigureDHCP(sink, net, p.Proxy); err != nil {
			return nil, err
		}

		if err := sections.FirewallZone(sink, net.Name, net); err != nil {
			return nil, err
		}
		if err := role.ConfigureFirewall(sink, net.Name, net, p.Networks); err != nil {
			return nil, err
		}

		if net.Wifi != nil {
			if e.skipWireless {
				log.Warn("wireless subsystem unavailable, skipping", "ssid", net.Wifi.SSID)
				continue
			}
			cred, err := e.wireless.Configure(sink, net)
			if err != nil {
				return nil, err
			}
			if cred != nil {
				creds = append(creds, *cred)
			}
		}
	}

	if err := sink.Emit(uci.Commit()); err != nil {
		return nil, err
	}

	return creds, nil
}

// AllocatePorts assigns physical ports to networks: explicit `ports`
// lists pass through verbatim, every other network takes one untagged
// port from the pool in plan order, and leftovers join the VLAN-1
// network. Networks beyond the pool stay wireless-only.
func AllocatePorts(p *plan.Plan, hw *hardware.Info) map[string][]string {
	pool := portPool(hw)
	allocation := make(map[string][]string, len(p.Networks))

	for _, n := range p.Networks {
		if len(n.Ports) > 0 {
			allocation[n.Name] = n.Ports
		}
	}
	for _, n := range p.Networks {
		if len(n.Ports) > 0 {
			continue
		}
		if len(pool) == 0 {
			log.Debug("no physical port left", "network", n.Name)
			continue
		}
		allocation[n.Name] = []string{pool[0]}
		pool = pool[1:]
	}

	if len(pool) > 0 {
		for _, n := range p.Networks {
			if n.VLANID == 1 {
				allocation[n.Name] = append(allocation[n.Name], pool...)
				break
			}
		}
	}

	return allocation
}

// portPool lists the allocatable port tokens for the hardware: DSA
// port names, or switch chip port numbers in swconfig mode.
func portPool(hw *hardware.Info) []string {
	if hw.Mode == hardware.ModeSwconfig && hw.Switch != nil {
		pool := make([]string, 0, len(hw.Switch.LANPorts))
		for _, p := range hw.Switch.LANPorts {
			pool = append(pool, strconv.Itoa(p))
		}
		return pool
	}
	return append([]string(nil), hw.LANPorts...)
}
