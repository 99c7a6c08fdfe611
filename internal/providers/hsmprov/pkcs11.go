//go:build cgo

package hsmprov

import (
	"fmt"

	"github.com/miekg/pkcs11"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// providerContext holds the initialized PKCS#11 module and the slot the
// provider digests on. Teardown finalizes the module.
type providerContext struct {
	ctx  *pkcs11.Ctx
	slot uint
	pin  string
}

// Init is the provider init entry point. It loads and initializes the
// PKCS#11 module named by the load parameters and resolves the target
// slot, so a bad module path or token label fails at activation rather
// than on first digest.
func Init(handle *registry.CoreHandle, core dispatch.Table) (dispatch.Table, any, error) {
	s, err := settingsFromParams(handle.Params)
	if err != nil {
		return dispatch.Table{}, nil, err
	}

	ctx := pkcs11.New(s.modulePath)
	if ctx == nil {
		return dispatch.Table{}, nil, fmt.Errorf("cannot load PKCS#11 module %s", s.modulePath)
	}
	if err := ctx.Initialize(); err != nil {
		if p11err, ok := err.(pkcs11.Error); !ok || p11err != pkcs11.CKR_CRYPTOKI_ALREADY_INITIALIZED {
			ctx.Destroy()
			return dispatch.Table{}, nil, fmt.Errorf("initialize PKCS#11 module: %w", err)
		}
	}

	pc := &providerContext{ctx: ctx, pin: s.pin}
	pc.slot, err = resolveSlot(ctx, s)
	if err != nil {
		ctx.Finalize()
		ctx.Destroy()
		return dispatch.Table{}, nil, err
	}

	table := dispatch.New(
		dispatch.Entry{ID: dispatch.ProvTeardown, Fn: registry.TeardownFunc(teardown)},
		dispatch.Entry{ID: dispatch.ProvQueryOperation, Fn: registry.QueryOperationFunc(queryOperation)},
		dispatch.Entry{ID: dispatch.ProvGetParams, Fn: registry.GetParamsFunc(func(provCtx any) map[string]string {
			pc := provCtx.(*providerContext)
			return map[string]string{
				"name":    Name,
				"version": registry.Version,
				"module":  s.modulePath,
				"slot":    fmt.Sprintf("%d", pc.slot),
			}
		})},
	)
	return table, pc, nil
}

func teardown(provCtx any) {
	pc := provCtx.(*providerContext)
	pc.ctx.Finalize()
	pc.ctx.Destroy()
}

// resolveSlot picks the slot by explicit id, or scans token labels.
func resolveSlot(ctx *pkcs11.Ctx, s settings) (uint, error) {
	if s.slotSet {
		return s.slot, nil
	}
	slots, err := ctx.GetSlotList(true)
	if err != nil {
		return 0, fmt.Errorf("list slots: %w", err)
	}
	for _, slot := range slots {
		info, err := ctx.GetTokenInfo(slot)
		if err != nil {
			continue
		}
		if info.Label == s.token {
			return slot, nil
		}
	}
	return 0, fmt.Errorf("no token with label %q", s.token)
}

func queryOperation(provCtx any, op registry.Operation) ([]registry.Algorithm, bool, error) {
	if op != registry.OpDigest {
		return nil, false, nil
	}
	pc := provCtx.(*providerContext)
	return []registry.Algorithm{
		pc.digest("SHA2-256|SHA-256|SHA256", pkcs11.CKM_SHA256, 32, 64),
		pc.digest("SHA2-384|SHA-384|SHA384", pkcs11.CKM_SHA384, 48, 128),
		pc.digest("SHA2-512|SHA-512|SHA512", pkcs11.CKM_SHA512, 64, 128),
	}, false, nil
}

// digestState is the opaque streaming state for one digest computation.
// The token session is opened lazily on first write, because the dispatch
// contract gives context creation no error path.
type digestState struct {
	pc      *providerContext
	mech    uint
	session pkcs11.SessionHandle
	started bool
	err     error
}

func (d *digestState) start() error {
	session, err := d.pc.ctx.OpenSession(d.pc.slot, pkcs11.CKF_SERIAL_SESSION)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	if d.pc.pin != "" {
		if err := d.pc.ctx.Login(session, pkcs11.CKU_USER, d.pc.pin); err != nil {
			if p11err, ok := err.(pkcs11.Error); !ok || p11err != pkcs11.CKR_USER_ALREADY_LOGGED_IN {
				d.pc.ctx.CloseSession(session)
				return fmt.Errorf("login: %w", err)
			}
		}
	}
	mech := []*pkcs11.Mechanism{pkcs11.NewMechanism(d.mech, nil)}
	if err := d.pc.ctx.DigestInit(session, mech); err != nil {
		d.pc.ctx.CloseSession(session)
		return fmt.Errorf("digest init: %w", err)
	}
	d.session = session
	d.started = true
	return nil
}

func (d *digestState) update(p []byte) error {
	if d.err != nil {
		return d.err
	}
	if !d.started {
		if d.err = d.start(); d.err != nil {
			return d.err
		}
	}
	if err := d.pc.ctx.DigestUpdate(d.session, p); err != nil {
		d.err = fmt.Errorf("digest update: %w", err)
		d.pc.ctx.CloseSession(d.session)
		d.started = false
		return d.err
	}
	return nil
}

func (d *digestState) final() ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	if !d.started {
		if d.err = d.start(); d.err != nil {
			return nil, d.err
		}
	}
	sum, err := d.pc.ctx.DigestFinal(d.session)
	d.pc.ctx.CloseSession(d.session)
	d.started = false
	if err != nil {
		d.err = fmt.Errorf("digest final: %w", err)
		return nil, d.err
	}
	return sum, nil
}

func (pc *providerContext) digest(names string, mech uint, size, blockSize int) registry.Algorithm {
	return registry.Algorithm{
		Names:      names,
		Properties: props,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.DigestNewCtx, Fn: dispatch.DigestNewCtxFunc(func() any {
				return &digestState{pc: pc, mech: mech}
			})},
			dispatch.Entry{ID: dispatch.DigestUpdate, Fn: dispatch.DigestUpdateFunc(func(ctx any, p []byte) error {
				return ctx.(*digestState).update(p)
			})},
			dispatch.Entry{ID: dispatch.DigestFinal, Fn: dispatch.DigestFinalFunc(func(ctx any) ([]byte, error) {
				return ctx.(*digestState).final()
			})},
			dispatch.Entry{ID: dispatch.DigestSize, Fn: dispatch.DigestSizeFunc(func() int { return size })},
			dispatch.Entry{ID: dispatch.DigestBlockSize, Fn: dispatch.DigestBlockSizeFunc(func() int { return blockSize })},
		),
	}
}
