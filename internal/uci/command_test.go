package uci

import "testing"

func TestCommandString(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"set option", Set("network", "lan", "ipaddr", "192.168.1.1"), "uci set network.lan.ipaddr='192.168.1.1'"},
		{"define section", DefineSection("network", "vlan10", "bridge-vlan"), "uci set network.vlan10='bridge-vlan'"},
		{"add list", AddList("network", "lan_dev", "ports", "lan1"), "uci add_list network.lan_dev.ports='lan1'"},
		{"delete section", Delete("network", "vlan10", ""), "uci delete network.vlan10"},
		{"delete option", Delete("dhcp", "lan", "ignore"), "uci delete dhcp.lan.ignore"},
		{"commit all", Commit(), "uci commit"},
		{"commit config", Command{Op: OpCommit, Config: "network"}, "uci commit network"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cmd.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want []string
	}{
		{"set", Set("network", "lan", "ipaddr", "192.168.1.1"), []string{"set", "network.lan.ipaddr=192.168.1.1"}},
		{"add list", AddList("network", "lan_dev", "ports", "lan1"), []string{"add_list", "network.lan_dev.ports=lan1"}},
		{"delete", Delete("network", "vlan10", ""), []string{"delete", "network.vlan10"}},
		{"commit", Commit(), []string{"commit"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.cmd.Args()
			if len(got) != len(tc.want) {
				t.Fatalf("Args() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Args()[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}
