package reservation

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/cinema-booking-gateway/internal/model"
	"github.com/iliyamo/cinema-booking-gateway/internal/monitoring"
	"github.com/iliyamo/cinema-booking-gateway/internal/seatmap"
)

// API is everything the manager needs from the backend client: the
// seat operations plus the show lookup that yields the screen ID the
// seat map is fetched for.
type API interface {
	SeatAPI
	GetShow(ctx context.Context, showID uint64) (*model.Show, error)
}

// sessionKey scopes a session to one user and one show.  Two users on
// the same show get independent sessions; the backend arbitrates
// between them.
type sessionKey struct {
	userID uint64
	showID uint64
}

// Manager owns the live seat-selection sessions of this gateway
// instance.  Sessions are created on first entry to a seat screen and
// removed on release or successful booking; they hold no persistent
// state, so losing them costs nothing but the server-side block expiry
// wait.
type Manager struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Session
	api      API
	fee      decimal.Decimal
}

// NewManager constructs a Manager around the backend client.  fee is
// the flat display-only service fee added to booking summaries.
func NewManager(api API, fee decimal.Decimal) *Manager {
	if api == nil {
		panic("nil backend API passed to NewManager")
	}
	return &Manager{
		sessions: make(map[sessionKey]*Session),
		api:      api,
		fee:      fee,
	}
}

// Session returns the user's session for the show, opening one if
// needed.  Opening loads the show first and then, once the screen ID is
// known from it, the screen's seat inventory; an inactive show or a
// failed load opens nothing.
func (m *Manager) Session(ctx context.Context, userID, showID uint64) (*Session, error) {
	key := sessionKey{userID: userID, showID: showID}

	m.mu.Lock()
	if sess, ok := m.sessions[key]; ok {
		m.mu.Unlock()
		return sess, nil
	}
	m.mu.Unlock()

	// Load outside the lock; opening a session is two backend calls.
	show, err := m.api.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}
	if !show.IsActive {
		return nil, ErrShowInactive
	}
	grid, err := seatmap.NewLoader(m.api).Load(ctx, show.ScreenID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// A concurrent request may have opened the session meanwhile; the
	// first one in wins and the duplicate load is discarded.
	if sess, ok := m.sessions[key]; ok {
		return sess, nil
	}
	sess := newSession(userID, show, grid, m.api, m.fee)
	m.sessions[key] = sess
	monitoring.SessionOpened()
	return sess, nil
}

// Peek returns an existing session without opening one.
func (m *Manager) Peek(userID, showID uint64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionKey{userID: userID, showID: showID}]
	return sess, ok
}

// Release tears down the user's session for a show, issuing best-effort
// unblocks for any held seats.  It returns how many seats were held.
// Releasing a show with no session is a no-op.
func (m *Manager) Release(ctx context.Context, userID, showID uint64) int {
	m.mu.Lock()
	key := sessionKey{userID: userID, showID: showID}
	sess, ok := m.sessions[key]
	if ok {
		delete(m.sessions, key)
	}
	m.mu.Unlock()
	if !ok {
		return 0
	}
	monitoring.SessionClosed()
	return sess.Release(ctx)
}

// Close drops a session without unblocking anything.  It is called
// after a successful booking, when the held seats have just become
// BOOKED and must not be released.
func (m *Manager) Close(userID, showID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := sessionKey{userID: userID, showID: showID}
	if _, ok := m.sessions[key]; ok {
		delete(m.sessions, key)
		monitoring.SessionClosed()
	}
}
