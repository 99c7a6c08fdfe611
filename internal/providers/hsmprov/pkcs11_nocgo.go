//go:build !cgo

package hsmprov

import (
	"fmt"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// errNoCGO is returned when HSM activation is attempted without CGO.
var errNoCGO = fmt.Errorf("HSM support requires CGO (build with CGO_ENABLED=1)")

// Init is the provider init entry point. This stub is used when CGO is
// not available; activation fails with a load error.
func Init(handle *registry.CoreHandle, core dispatch.Table) (dispatch.Table, any, error) {
	if _, err := settingsFromParams(handle.Params); err != nil {
		return dispatch.Table{}, nil, err
	}
	return dispatch.Table{}, nil, errNoCGO
}
