//go:build !(cgo && (linux || darwin || freebsd))

package registry

import "fmt"

// ProviderInitSymbol is the exported symbol a dynamically loaded provider
// module must define. This is the sole ABI boundary with dynamic units.
const ProviderInitSymbol = "ProviderInit"

// LoadModule is a stub used when the platform cannot load shared object
// modules. Dynamic provider loading requires CGO on linux, darwin or
// freebsd; built-in providers remain available everywhere.
func (c *Context) LoadModule(path string, params map[string]string) error {
	return fmt.Errorf("%w: module %q: dynamic provider modules require cgo on linux/darwin/freebsd", ErrLoad, path)
}
