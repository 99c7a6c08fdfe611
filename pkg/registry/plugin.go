//go:build cgo && (linux || darwin || freebsd)

package registry

import (
	"fmt"
	"path/filepath"
	"plugin"
	"strings"

	"github.com/remiblancher/qprov/pkg/dispatch"
)

// ProviderInitSymbol is the exported symbol a dynamically loaded provider
// module must define. This is the sole ABI boundary with dynamic units.
const ProviderInitSymbol = "ProviderInit"

// LoadModule loads a provider module from a shared object file and
// activates it in this context. The module must export ProviderInit with
// the InitFunc signature. The provider identifier is the module file name
// without its extension unless params carries a "name" entry.
//
// Loading executes the module's third-party initialization code; failures
// are fatal to this load call only and never corrupt already-loaded
// providers. Loading may block on filesystem and loader activity.
func (c *Context) LoadModule(path string, params map[string]string) error {
	plug, err := plugin.Open(path)
	if err != nil {
		return fmt.Errorf("%w: module %q: %v", ErrLoad, path, err)
	}

	sym, err := plug.Lookup(ProviderInitSymbol)
	if err != nil {
		return fmt.Errorf("%w: module %q: no %s entry point: %v", ErrLoad, path, ProviderInitSymbol, err)
	}

	var init InitFunc
	switch s := sym.(type) {
	case func(*CoreHandle, dispatch.Table) (dispatch.Table, any, error):
		init = s
	case *InitFunc:
		init = *s
	default:
		return fmt.Errorf("%w: module %q: %s has unexpected type %T", ErrLoad, path, ProviderInitSymbol, sym)
	}

	name := moduleName(path, params)
	return c.load(name, params, init)
}

// moduleName derives the provider identifier for a module path.
func moduleName(path string, params map[string]string) string {
	if n := params["name"]; n != "" {
		return n
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
