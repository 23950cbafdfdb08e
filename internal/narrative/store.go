package narrative

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"daydream/internal/logging"

	"github.com/google/uuid"
)

// StorageName is the blob name the narrative state persists under.
const StorageName = "daydream-user-storage"

// StateVersion tags the persisted envelope. Bumping it discards older blobs.
const StateVersion = 1

// Persister stores named blobs. store.LocalStorage and store.Memory satisfy it.
type Persister interface {
	Load(name string) ([]byte, bool, error)
	Save(name string, data []byte) error
}

// Resetter is a dependent store that is cleared together with the session.
type Resetter interface {
	Reset()
}

type envelope struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// Option configures a Store.
type Option func(*Store)

// WithPersister hydrates from and writes to p.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithRand sets the random source used for team assignment.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// WithSessionIDs overrides the session id generator.
func WithSessionIDs(gen func() string) Option {
	return func(s *Store) { s.newSessionID = gen }
}

// WithDependents registers stores that Reset clears as well.
func WithDependents(deps ...Resetter) Option {
	return func(s *Store) { s.dependents = append(s.dependents, deps...) }
}

// Store is the observable narrative state container. Every operation is one
// atomic update; the new state is persisted and then subscribers are told.
type Store struct {
	mu           sync.Mutex
	state        State
	persister    Persister
	rng          *rand.Rand
	newSessionID func() string
	dependents   []Resetter

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// New creates a Store and hydrates it from the persister, if any.
func New(opts ...Option) *Store {
	s := &Store{
		state:        DefaultState(),
		newSessionID: uuid.NewString,
		subs:         make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	if s.persister == nil {
		return
	}
	data, ok, err := s.persister.Load(StorageName)
	if err != nil {
		logging.StoreError("narrative: load %s failed: %v", StorageName, err)
		return
	}
	if !ok {
		return
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		logging.Get(logging.CategoryStore).Warn("narrative: discarding undecodable state: %v", err)
		return
	}
	if env.Version != StateVersion {
		logging.Get(logging.CategoryStore).Warn("narrative: discarding state version %d (want %d)", env.Version, StateVersion)
		return
	}
	// Ephemeral locks never survive a reload: the engine holding them is gone.
	env.State.IsNavigationDisabled = false
	env.State.IsPointGlitching = false
	s.state = env.State
	logging.NarrativeDebug("hydrated state for %q", s.state.UserName)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive the state after every change. The
// returned func unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// AddDependent registers a store that Reset clears as well.
func (s *Store) AddDependent(r Resetter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dependents = append(s.dependents, r)
}

// update applies fn atomically. fn reports whether it changed anything;
// unchanged updates are neither persisted nor broadcast.
func (s *Store) update(op string, fn func(*State) bool) bool {
	s.mu.Lock()
	if !fn(&s.state) {
		s.mu.Unlock()
		return false
	}
	next := s.state
	s.persistLocked()
	s.mu.Unlock()

	logging.NarrativeDebug("%s", op)
	s.notify(next)
	return true
}

func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	data, err := json.Marshal(envelope{State: s.state, Version: StateVersion})
	if err != nil {
		logging.StoreError("narrative: marshal failed: %v", err)
		return
	}
	if err := s.persister.Save(StorageName, data); err != nil {
		logging.StoreError("narrative: save failed: %v", err)
	}
}

func (s *Store) notify(st State) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(State), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// Login starts a session for id. The protagonist gets the scripted identity;
// anyone else is a random junior employee. A corrupted name survives until Reset.
func (s *Store) Login(id string) {
	sessionID := s.newSessionID()
	s.update("login", func(st *State) bool {
		corrupted := st.IsNameCorrupted()
		if id == Protagonist {
			st.UserName = Protagonist
			st.Team = ProtagonistTeam
			st.Rank = ProtagonistRank
			st.Points = ProtagonistPoints
		} else {
			if id == "" {
				id = GuestName
			}
			st.UserName = id
			st.Team = EmployeeTeams[s.rng.Intn(len(EmployeeTeams))]
			st.Rank = EmployeeRank
			st.Points = EmployeePoints
		}
		if corrupted {
			st.UserName = CorruptedName
		}
		st.IsLoggedIn = true
		st.SessionID = sessionID
		return true
	})
	logging.Session("login %q session=%s", id, sessionID)
}

// Reset restores every field to its default and resets every dependent store.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = DefaultState()
	next := s.state
	deps := append([]Resetter(nil), s.dependents...)
	s.persistLocked()
	s.mu.Unlock()

	for _, d := range deps {
		d.Reset()
	}
	logging.Session("session reset")
	s.notify(next)
}

// SetNavigationDisabled sets the navigation lock.
func (s *Store) SetNavigationDisabled(disabled bool) {
	s.update(fmt.Sprintf("navigation disabled=%v", disabled), func(st *State) bool {
		if st.IsNavigationDisabled == disabled {
			return false
		}
		st.IsNavigationDisabled = disabled
		return true
	})
}

// SetJumpscareViewed records that the jumpscare played.
func (s *Store) SetJumpscareViewed() {
	s.update("jumpscare viewed", func(st *State) bool {
		if st.JumpscareViewed {
			return false
		}
		st.JumpscareViewed = true
		return true
	})
}

// StartSecurityTimer arms the security progression. It refuses when the
// easter egg is done, the timer is running, or the message already fired.
func (s *Store) StartSecurityTimer() bool {
	return s.update("security timer started", func(st *State) bool {
		if st.SecurityEasterEggDone || st.SecurityTimerActive || st.SecurityMessageTriggered {
			return false
		}
		st.SecurityTimerActive = true
		return true
	})
}

// TriggerSecurityMessage moves an active timer to the triggered message.
func (s *Store) TriggerSecurityMessage() bool {
	return s.update("security message triggered", func(st *State) bool {
		if !st.SecurityTimerActive || st.SecurityEasterEggDone {
			return false
		}
		st.SecurityTimerActive = false
		st.SecurityMessageTriggered = true
		return true
	})
}

// MarkSecurityMessageRead marks the security message as read.
func (s *Store) MarkSecurityMessageRead() {
	s.update("security message read", func(st *State) bool {
		if st.IsSecurityMessageRead {
			return false
		}
		st.IsSecurityMessageRead = true
		return true
	})
}

// MarkSecurityToastShown records that the security toast was displayed.
func (s *Store) MarkSecurityToastShown() {
	s.update("security toast shown", func(st *State) bool {
		if st.IsSecurityToastShown {
			return false
		}
		st.IsSecurityToastShown = true
		return true
	})
}

// CompleteSecurityEasterEgg finishes the security progression for good.
func (s *Store) CompleteSecurityEasterEgg() bool {
	return s.update("security easter egg done", func(st *State) bool {
		if st.SecurityEasterEggDone {
			return false
		}
		st.SecurityMessageTriggered = false
		st.SecurityTimerActive = false
		st.SecurityEasterEggDone = true
		return true
	})
}

// DeleteSpamMessage removes the spam message from every listing.
func (s *Store) DeleteSpamMessage() {
	s.update("spam message deleted", func(st *State) bool {
		if st.SpamMessageDeleted {
			return false
		}
		st.SpamMessageDeleted = true
		return true
	})
}

// CorruptUserName overwrites the display name with the corruption sentinel.
func (s *Store) CorruptUserName() {
	s.update("user name corrupted", func(st *State) bool {
		if st.UserName == CorruptedName {
			return false
		}
		st.UserName = CorruptedName
		return true
	})
}

// LoginToWelfareMall grants mall access. Any credentials are accepted.
func (s *Store) LoginToWelfareMall(id, password string) bool {
	_ = password
	s.update("welfare mall login", func(st *State) bool {
		st.HasWelfareMallAccess = true
		st.WelfareMallLoginID = id
		return true
	})
	return true
}

// IncrementBackButton counts a back press inside the welfare mall.
func (s *Store) IncrementBackButton() int {
	var n int
	s.update("back button", func(st *State) bool {
		st.BackButtonCount++
		n = st.BackButtonCount
		return true
	})
	return n
}

// ResetBackButton zeroes the back press counter.
func (s *Store) ResetBackButton() {
	s.update("back button reset", func(st *State) bool {
		if st.BackButtonCount == 0 {
			return false
		}
		st.BackButtonCount = 0
		return true
	})
}

// UnlockWelfareMallHiddenAccess opens the hidden mall.
func (s *Store) UnlockWelfareMallHiddenAccess() {
	s.update("hidden mall unlocked", func(st *State) bool {
		if st.WelfareMallHiddenAccess {
			return false
		}
		st.WelfareMallHiddenAccess = true
		return true
	})
}

// SetPointGlitching toggles the glitching points display.
func (s *Store) SetPointGlitching(on bool) {
	s.update(fmt.Sprintf("point glitching=%v", on), func(st *State) bool {
		if st.IsPointGlitching == on {
			return false
		}
		st.IsPointGlitching = on
		return true
	})
}
