package interpguard

// Token is an interpreter's saved execution state, produced when the global
// lock is released and consumed when it is restored. The payload is owned by
// the StateLock implementation that created the token; everything else
// treats tokens as opaque and passes them through unchanged.
type Token struct {
	payload any
}

// NewToken wraps an implementation-defined payload. Only StateLock
// implementations construct tokens.
func NewToken(payload any) Token {
	return Token{payload: payload}
}

// Payload returns the saved state carried by the token.
func (t Token) Payload() any {
	return t.payload
}

// StateLock is the explicit handle for an interpreter-global exclusivity
// lock. Release must be called by a goroutine that holds the lock; Restore
// must be called by a goroutine that does not. Violating that protocol is
// undefined behavior, exactly as with a raw mutex.
type StateLock interface {
	// Release unlocks and returns the interpreter's saved execution state.
	Release() Token

	// Restore blocks until the lock is reacquired, then resumes the saved
	// execution state carried by the token. The wait is unbounded; there is
	// no cancellation.
	Restore(Token)
}

// Guard pairs one Release with exactly one Restore. It holds the one token
// captured at release time for its whole lifetime. Between Release and
// Restore the owning goroutine does not hold the interpreter lock and must
// not touch interpreter-managed objects; that obligation is the caller's,
// not enforced here.
//
// Guards are single-use and belong to one goroutine. Do not copy or share
// them.
type Guard struct {
	lock     StateLock
	token    Token
	restored bool
}

// Release releases the interpreter lock and returns a guard holding the
// saved-state token.
func Release(l StateLock) *Guard {
	return &Guard{lock: l, token: l.Release()}
}

// Restore reacquires the lock and consumes the token. The restore runs
// exactly once per guard; further calls are no-ops, so it is safe to defer
// Restore and also call it explicitly on an early path.
func (g *Guard) Restore() {
	if g.restored {
		return
	}
	g.restored = true
	g.lock.Restore(g.token)
}

// Unlocked runs fn with the interpreter lock released, restoring it when fn
// returns or panics.
func Unlocked(l StateLock, fn func()) {
	g := Release(l)
	defer g.Restore()
	fn()
}
