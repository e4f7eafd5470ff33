package router

import "sync"

// Call attempt phases. An attempt is volatile relay state only; nothing
// about a call is persisted.
const (
	CallInitiated     = "initiated"
	CallOffered       = "offered"
	CallAnswered      = "answered"
	CallIceExchanging = "ice-exchanging"
)

type callPair struct {
	low, high uint
}

func pairOf(a, b uint) callPair {
	if a > b {
		a, b = b, a
	}
	return callPair{low: a, high: b}
}

type callAttempt struct {
	callerID   uint
	receiverID uint
	phase      string
}

// CallRegistry tracks at most one live call attempt per unordered user
// pair. A second startCall or offer while a prior attempt is live is
// rejected; answer and ice exchange only advance an existing attempt.
type CallRegistry struct {
	mu    sync.Mutex
	calls map[callPair]*callAttempt
}

func NewCallRegistry() *CallRegistry {
	return &CallRegistry{calls: make(map[callPair]*callAttempt)}
}

// Begin claims the pair for a new attempt in the given phase. The same
// caller may advance its own attempt (startCall followed by offer); anyone
// else is refused until the attempt reaches a terminal phase.
func (r *CallRegistry) Begin(callerID, receiverID uint, phase string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairOf(callerID, receiverID)
	if attempt, ok := r.calls[key]; ok {
		if attempt.callerID != callerID {
			return false
		}
		attempt.phase = phase
		return true
	}

	r.calls[key] = &callAttempt{
		callerID:   callerID,
		receiverID: receiverID,
		phase:      phase,
	}
	return true
}

// Advance moves an existing attempt to the given phase. Unknown pairs are
// ignored: candidates may arrive in any order relative to the answer and
// the relay forwards them regardless.
func (r *CallRegistry) Advance(a, b uint, phase string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if attempt, ok := r.calls[pairOf(a, b)]; ok {
		attempt.phase = phase
	}
}

// End resolves the attempt for a pair, terminal for ended and rejected
// alike. Safe to call for pairs with no attempt.
func (r *CallRegistry) End(a, b uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.calls, pairOf(a, b))
}

// DropUser clears every attempt involving the user. Called on disconnect so
// a vanished peer cannot wedge the pair forever.
func (r *CallRegistry) DropUser(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, attempt := range r.calls {
		if attempt.callerID == userID || attempt.receiverID == userID {
			delete(r.calls, key)
		}
	}
}

// Active reports whether a live attempt exists between the two users.
func (r *CallRegistry) Active(a, b uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.calls[pairOf(a, b)]
	return ok
}

// Phase returns the current phase of the pair's attempt, or "".
func (r *CallRegistry) Phase(a, b uint) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if attempt, ok := r.calls[pairOf(a, b)]; ok {
		return attempt.phase
	}
	return ""
}
