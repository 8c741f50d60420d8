// Package roles maps a network's role tag to the access policy that
// shapes its DHCP and firewall behavior. The registry is an open
// extension point: adding a role means implementing the interface and
// registering it, without touching anything here.
package roles

import (
	"fmt"
	"sort"
	"strings"

	"wrtforge/internal/plan"
	"wrtforge/internal/uci"
)

// Role is the access-policy strategy interface.
type Role interface {
	// ConfigureDHCP layers role-specific options over the baseline
	// DHCP pool that the section builder already emitted.
	ConfigureDHCP(sink uci.Sink, net *plan.Network, proxy *plan.Proxy) error
	// ConfigureFirewall layers role-specific rules over the baseline
	// zone. peers holds every other network in the plan, for roles
	// that spell out cross-zone policy.
	ConfigureFirewall(sink uci.Sink, zone string, net *plan.Network, peers []*plan.Network) error
}

// Registry resolves role keys to strategy instances.
type Registry struct {
	roles map[string]Role
}

// NewRegistry creates a registry seeded with the built-in roles.
func NewRegistry() *Registry {
	r := &Registry{roles: make(map[string]Role)}
	r.Register("proxy", &Proxy{})
	r.Register("clean", &Clean{DNS: PublicDNS})
	r.Register("isolate", &Isolate{})
	return r
}

// Register adds or replaces a role strategy.
func (r *Registry) Register(key string, role Role) {
	r.roles[key] = role
}

// Get resolves a role key. Unknown keys report the available set so a
// typo in a plan is a one-look fix.
func (r *Registry) Get(key string) (Role, error) {
	role, ok := r.roles[key]
	if !ok {
		return nil, fmt.Errorf("unknown role %q, available: [%s]", key, strings.Join(r.Keys(), ", "))
	}
	return role, nil
}

// Keys returns the registered role keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.roles))
	for k := range r.roles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
