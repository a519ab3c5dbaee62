package luavm

import (
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	interpguard "github.com/wippyai/interp-guard"
	"github.com/wippyai/interp-guard/bind"
	"github.com/wippyai/interp-guard/errors"
)

// Interp owns a Lua state and the global exclusivity lock serializing all
// access to it. It implements interpguard.StateLock and bind.Installer, so
// it serves as both the lock and the exposition facility for its own
// bindings.
type Interp struct {
	state  *lua.LState
	mu     sync.Mutex
	log    *zap.Logger
	closed bool
}

type Option func(*Interp)

// WithLogger sets the adapter's logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(ip *Interp) {
		if l != nil {
			ip.log = l
		}
	}
}

// New creates an interpreter with a fresh Lua state.
func New(opts ...Option) *Interp {
	ip := &Interp{
		state: lua.NewState(),
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(ip)
	}
	return ip
}

// Close shuts the interpreter down. Outstanding guarded calls must have
// returned; Close takes the lock before destroying the state.
func (ip *Interp) Close() {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if ip.closed {
		return
	}
	ip.closed = true
	ip.state.Close()
}

// Do runs fn with the interpreter lock held. This is the only supported
// way to touch the Lua state directly.
func (ip *Interp) Do(fn func(L *lua.LState) error) error {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if ip.closed {
		return errors.Closed("interpreter")
	}
	return fn(ip.state)
}

// DoString runs Lua source with the interpreter lock held.
func (ip *Interp) DoString(source string) error {
	return ip.Do(func(L *lua.LState) error {
		return L.DoString(source)
	})
}

// Bind guards every function in reg against this interpreter's lock and
// installs the exposed objects into per-namespace global tables.
func (ip *Interp) Bind(reg *bind.Registry) error {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if ip.closed {
		return errors.Closed("interpreter")
	}
	return reg.Bind(ip, ip)
}

// Release implements interpguard.StateLock. The caller must hold the
// interpreter lock; the token records which state was suspended.
func (ip *Interp) Release() interpguard.Token {
	state := ip.state
	ip.mu.Unlock()
	return interpguard.NewToken(state)
}

// Restore implements interpguard.StateLock. It blocks until the lock is
// reacquired.
func (ip *Interp) Restore(t interpguard.Token) {
	ip.mu.Lock()
	if s, ok := t.Payload().(*lua.LState); !ok || s != ip.state {
		ip.log.Warn("restore consumed a token from another interpreter")
	}
}
