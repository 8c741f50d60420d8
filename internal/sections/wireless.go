package sections

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"math/big"

	"wrtforge/internal/plan"
	"wrtforge/internal/uci"
)

// Generated wireless keys: fixed length, letters and digits only, from
// a cryptographic source. Injectable so tests can assert the policy
// without asserting exact values.
const (
	DefaultRadio   = "radio0"
	PasswordLength = 8
	passwordChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Wireless builds wifi-iface sections, generating a key when the plan
// asks for one.
type Wireless struct {
	// Radio is the physical device new interfaces attach to.
	Radio string
	// Rand is the randomness source for generated keys.
	Rand io.Reader
}

// NewWireless returns a builder with the default radio and a
// cryptographic randomness source.
func NewWireless() *Wireless {
	return &Wireless{Radio: DefaultRadio, Rand: crand.Reader}
}

// Configure emits the access-point section for a network's wifi block
// and returns the resulting credential. A password equal to the
// auto-generate marker is replaced before anything is emitted, so a
// failing randomness source produces zero wireless commands.
func (w *Wireless) Configure(sink uci.Sink, net *plan.Network) (*plan.Credential, error) {
	if net.Wifi == nil {
		return nil, nil
	}

	password := net.Wifi.Password
	if password == plan.AutoGenerate {
		generated, err := GeneratePassword(w.Rand, PasswordLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate password for %q: %w", net.Wifi.SSID, err)
		}
		password = generated
	}

	section := "wifi_" + net.Name
	cmds := []uci.Command{
		uci.DefineSection("wireless", section, "wifi-iface"),
		uci.Set("wireless", section, "device", w.Radio),
		uci.Set("wireless", section, "mode", "ap"),
		uci.Set("wireless", section, "ssid", net.Wifi.SSID),
		uci.Set("wireless", section, "encryption", "psk2"),
		uci.Set("wireless", section, "key", password),
		uci.Set("wireless", section, "network", net.Name),
	}
	for _, c := range cmds {
		if err := sink.Emit(c); err != nil {
			return nil, err
		}
	}

	return &plan.Credential{
		Network:  net.Name,
		SSID:     net.Wifi.SSID,
		Password: password,
		Role:     net.Role,
	}, nil
}

// GeneratePassword draws length characters from the policy charset
// using unbiased sampling over the supplied source.
func GeneratePassword(src io.Reader, length int) (string, error) {
	space := big.NewInt(int64(len(passwordChars)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := crand.Int(src, space)
		if err != nil {
			return "", err
		}
		buf[i] = passwordChars[n.Int64()]
	}
	return string(buf), nil
}
