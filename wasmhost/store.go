package wasmhost

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	interpguard "github.com/wippyai/interp-guard"
	"github.com/wippyai/interp-guard/bind"
	"github.com/wippyai/interp-guard/errors"
)

// Store owns a wazero runtime and the store-wide exclusivity lock
// serializing guest execution. It implements interpguard.StateLock and
// bind.Installer.
type Store struct {
	rt      wazero.Runtime
	mu      sync.Mutex
	log     *zap.Logger
	pending map[string]map[string]*HostFunc
	closed  bool
}

type Option func(*Store)

// WithLogger sets the adapter's logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a store with a fresh wazero runtime.
func New(ctx context.Context, opts ...Option) *Store {
	s := &Store{
		rt:      wazero.NewRuntime(ctx),
		log:     zap.NewNop(),
		pending: make(map[string]map[string]*HostFunc),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Close releases the runtime. Outstanding guarded calls must have
// returned; Close takes the lock before tearing down.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.rt.Close(ctx)
}

// Bind guards every function in reg against the store lock and stages the
// exposed host functions for Instantiate.
func (s *Store) Bind(reg *bind.Registry) error {
	return reg.Bind(s, s)
}

// Instantiate materializes every staged namespace as a wazero host module.
// Must run before guest modules that import the functions.
func (s *Store) Instantiate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.Closed("store")
	}

	for namespace, fns := range s.pending {
		b := s.rt.NewHostModuleBuilder(namespace)
		for name, hf := range fns {
			b = b.NewFunctionBuilder().WithFunc(hf.fn).Export(name)
		}
		if _, err := b.Instantiate(ctx); err != nil {
			return errors.Wrap(errors.PhaseInstall, errors.KindRegistration, err, "instantiate host module "+namespace)
		}
		s.log.Debug("host module instantiated",
			zap.String("namespace", namespace),
			zap.Int("functions", len(fns)))
	}
	s.pending = make(map[string]map[string]*HostFunc)
	return nil
}

// Run instantiates a guest module while holding the store lock.
func (s *Store) Run(ctx context.Context, source []byte) (api.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.Closed("store")
	}
	mod, err := s.rt.Instantiate(ctx, source)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "instantiate guest module")
	}
	return mod, nil
}

// Call invokes an exported guest function while holding the store lock.
// Guarded host functions the guest calls back into release the lock for
// the duration of their native bodies.
func (s *Store) Call(ctx context.Context, mod api.Module, name string, params ...uint64) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.Closed("store")
	}
	f := mod.ExportedFunction(name)
	if f == nil {
		return nil, errors.NotFound(errors.PhaseCall, "function", name)
	}
	return f.Call(ctx, params...)
}

// Release implements interpguard.StateLock. The caller must hold the
// store lock.
func (s *Store) Release() interpguard.Token {
	s.mu.Unlock()
	return interpguard.NewToken(s)
}

// Restore implements interpguard.StateLock. It blocks until the lock is
// reacquired.
func (s *Store) Restore(t interpguard.Token) {
	s.mu.Lock()
	if t.Payload() != any(s) {
		s.log.Warn("restore consumed a token from another store")
	}
}
