package plan

import (
	"fmt"
	"net"
	"regexp"
	"sort"
	"strings"
)

// Section names become uci identifiers; anything else is rejected
// before a single command is emitted.
var sectionNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidationError represents a single plan validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validate checks the whole plan against the set of registered role
// keys. It runs after Normalize and before any command is emitted, so
// a failing plan produces zero side effects.
func Validate(p *Plan, roleKeys []string) ValidationErrors {
	var errs ValidationErrors

	known := make(map[string]bool, len(roleKeys))
	for _, k := range roleKeys {
		known[k] = true
	}
	sorted := append([]string(nil), roleKeys...)
	sort.Strings(sorted)

	if p.Proxy != nil {
		if net.ParseIP(p.Proxy.SideRouterIP) == nil {
			errs = append(errs, ValidationError{
				Field:   "proxy.side_router_ip",
				Message: fmt.Sprintf("invalid IP address %q", p.Proxy.SideRouterIP),
			})
		}
		if p.Proxy.DHCPMode != DHCPModeMain && p.Proxy.DHCPMode != DHCPModeSide {
			errs = append(errs, ValidationError{
				Field:   "proxy.proxy_dhcp_mode",
				Message: fmt.Sprintf("must be %q or %q, got %q", DHCPModeMain, DHCPModeSide, p.Proxy.DHCPMode),
			})
		}
	}

	if len(p.Networks) == 0 {
		errs = append(errs, ValidationError{Field: "networks", Message: "plan defines no networks"})
	}

	seenNames := make(map[string]bool)
	seenVLANs := make(map[int]string)

	for _, n := range p.Networks {
		field := "network." + n.Name

		if !sectionNameRegex.MatchString(n.Name) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("name %q is not a valid section identifier", n.Name),
			})
		}
		if seenNames[n.Name] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate network name %q", n.Name),
			})
		}
		seenNames[n.Name] = true

		if n.VLANID < 1 || n.VLANID > 4094 {
			errs = append(errs, ValidationError{
				Field:   field + ".vlan_id",
				Message: fmt.Sprintf("vlan_id %d outside 1..4094", n.VLANID),
			})
		} else if other, dup := seenVLANs[n.VLANID]; dup {
			errs = append(errs, ValidationError{
				Field:   field + ".vlan_id",
				Message: fmt.Sprintf("vlan_id %d already used by network %q", n.VLANID, other),
			})
		} else {
			seenVLANs[n.VLANID] = n.Name
		}

		if !known[n.Role] {
			errs = append(errs, ValidationError{
				Field:   field + ".role",
				Message: fmt.Sprintf("unknown role %q, available: [%s]", n.Role, strings.Join(sorted, ", ")),
			})
		}

		if ip := net.ParseIP(n.Subnet); ip == nil || ip.To4() == nil {
			errs = append(errs, ValidationError{
				Field:   field + ".subnet",
				Message: fmt.Sprintf("invalid IPv4 address %q", n.Subnet),
			})
		}
		if !validNetmask(n.Netmask) {
			errs = append(errs, ValidationError{
				Field:   field + ".netmask",
				Message: fmt.Sprintf("invalid netmask %q", n.Netmask),
			})
		}

		if n.Wifi != nil {
			if n.Wifi.SSID == "" {
				errs = append(errs, ValidationError{Field: field + ".wifi.ssid", Message: "ssid is required"})
			} else if len(n.Wifi.SSID) > 32 {
				errs = append(errs, ValidationError{
					Field:   field + ".wifi.ssid",
					Message: fmt.Sprintf("ssid %q exceeds 32 bytes", n.Wifi.SSID),
				})
			}
		}
	}

	return errs
}

// validNetmask accepts contiguous dotted-quad masks only.
func validNetmask(mask string) bool {
	ip := net.ParseIP(mask)
	if ip == nil {
		return false
	}
	v4 := ip.To4()
	if v4 == nil {
		return false
	}
	ones, bits := net.IPMask(v4).Size()
	return bits == 32 && ones > 0
}
