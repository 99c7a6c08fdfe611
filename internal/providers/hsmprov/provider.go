// Package hsmprov implements the built-in "hsm" provider: digest
// operations offloaded to a PKCS#11 token. The provider is registered at
// import time like the other built-ins but is never activated by default;
// activating it requires load parameters naming the PKCS#11 module.
//
// HSM support requires CGO. Without CGO the provider registers a stub
// whose init entry point fails, so activation reports a load error
// instead of silently resolving to nothing.
package hsmprov

import (
	"fmt"
	"os"
	"strconv"

	"github.com/remiblancher/qprov/pkg/registry"
)

// Name is the identifier the provider is registered under.
const Name = "hsm"

const props = "hsm=yes"

func init() {
	registry.RegisterBuiltin(Name, Init)
}

// settings holds the PKCS#11 connection parameters extracted from the
// provider's load parameters.
type settings struct {
	// modulePath is the PKCS#11 library (.so/.dylib/.dll). Required.
	modulePath string

	// token selects the token by label. Used when slot is unset.
	token string

	// slot selects the token by slot id. Takes precedence over token.
	slot    uint
	slotSet bool

	// pin is the user PIN. Resolved from the "pin" parameter, or from the
	// environment variable named by "pin_env".
	pin string
}

func settingsFromParams(params map[string]string) (settings, error) {
	var s settings

	s.modulePath = params["module"]
	if s.modulePath == "" {
		return s, fmt.Errorf("missing required parameter %q", "module")
	}
	s.token = params["token"]

	if v, ok := params["slot"]; ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return s, fmt.Errorf("invalid slot %q: %w", v, err)
		}
		s.slot = uint(n)
		s.slotSet = true
	}
	if !s.slotSet && s.token == "" {
		return s, fmt.Errorf("either %q or %q must be set", "token", "slot")
	}

	s.pin = params["pin"]
	if s.pin == "" {
		if env := params["pin_env"]; env != "" {
			s.pin = os.Getenv(env)
		}
	}
	return s, nil
}
