package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"wrtforge/internal/plan"
	"wrtforge/internal/roles"
)

// RunCheck validates the plan file and, in verbose mode, prints the
// resolved topology. It never touches a device.
func RunCheck(planFile string, verbose bool) error {
	p, err := loadPlan(planFile)
	if err != nil {
		return fmt.Errorf("plan invalid: %w", err)
	}

	if errs := plan.Validate(p, roles.NewRegistry().Keys()); errs.HasErrors() {
		return errs
	}

	wireless := 0
	for _, n := range p.Networks {
		if n.Wifi != nil {
			wireless++
		}
	}

	fmt.Println("Plan valid!")
	fmt.Printf("Networks: %d\n", len(p.Networks))
	fmt.Printf("Wireless: %d\n", wireless)
	if p.Proxy != nil {
		fmt.Printf("Side router: %s (%s mode)\n", p.Proxy.SideRouterIP, p.Proxy.DHCPMode)
	}

	if verbose {
		fmt.Println()
		printTopology(p)
	}

	return nil
}

func printTopology(p *plan.Plan) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NETWORK\tVLAN\tROLE\tSUBNET\tPORTS\tWIFI")
	for _, n := range p.Networks {
		ports := "-"
		if len(n.Ports) > 0 {
			ports = strings.Join(n.Ports, " ")
		}
		wifi := "-"
		if n.Wifi != nil {
			wifi = n.Wifi.SSID
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s/%s\t%s\t%s\n",
			n.Name, n.VLANID, n.Role, n.Subnet, n.Netmask, ports, wifi)
	}
	w.Flush()
}
