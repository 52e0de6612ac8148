// Package gamestate holds the latest published snapshot of HoneyGame state
// for the connected wallet.
//
// The Store is a single-writer cell. Writers (the chain syncer, connect and
// disconnect) replace the whole snapshot at once; readers load whatever was
// published last and get their own deep copy, so a reader can never observe
// a half-written snapshot or modify the published one.

package gamestate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-honey-hive/inter"
)

var (
	// ErrNotConnected is returned when a write needs a connected wallet.
	ErrNotConnected = errors.New("wallet not connected")

	// ErrWrongAccount is returned when a snapshot belongs to another wallet,
	// typically a refresh that finished after the wallet changed.
	ErrWrongAccount = errors.New("snapshot belongs to another wallet")

	// ErrNoRefresher is returned by RequestRefresh before a refresher is set.
	ErrNoRefresher = errors.New("no refresher registered")
)

// RefreshFunc fetches fresh chain state and publishes it into the store.
type RefreshFunc func(ctx context.Context) error

// Update is sent to subscribers after every publication.
type Update struct {
	Version   uint64
	Connected bool
	Snapshot  inter.Snapshot
}

type entry struct {
	version   uint64
	connected bool
	snap      inter.Snapshot
}

// Store is the process-wide holder of the latest snapshot.
type Store struct {
	cur atomic.Value // *entry

	mu        sync.Mutex // serializes writers, guards subs and refresher
	subs      map[int]chan Update
	nextSub   int
	refresher RefreshFunc
}

// New returns a disconnected store holding the zero snapshot.
func New() *Store {
	s := &Store{subs: make(map[int]chan Update)}
	s.cur.Store(&entry{snap: inter.Snapshot{}.Copy()})
	return s
}

func (s *Store) load() *entry {
	return s.cur.Load().(*entry)
}

// Current returns a private copy of the latest snapshot.
func (s *Store) Current() inter.Snapshot {
	return s.load().snap.Copy()
}

// Version counts publications. It changes every time the snapshot is replaced.
func (s *Store) Version() uint64 {
	return s.load().version
}

// Connected reports whether a wallet is connected.
func (s *Store) Connected() bool {
	return s.load().connected
}

// Address returns the connected wallet, zero when disconnected.
func (s *Store) Address() common.Address {
	return s.load().snap.Player.Address
}

// Connect binds the store to a wallet and publishes its empty snapshot.
func (s *Store) Connect(addr common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishLocked(true, inter.EmptySnapshot(addr))
}

// Disconnect resets the store to the zero snapshot.
func (s *Store) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishLocked(false, inter.Snapshot{}.Copy())
}

// Replace publishes a freshly fetched snapshot for the connected wallet.
func (s *Store) Replace(snap inter.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.load()
	if !cur.connected {
		return ErrNotConnected
	}
	if snap.Player.Address != cur.snap.Player.Address {
		return ErrWrongAccount
	}
	s.publishLocked(true, snap.Copy())
	return nil
}

// MarkInitialized publishes the current snapshot with the player flagged as
// initialized. It is the only optimistic update the client makes, applied
// once initialize() is confirmed and before the follow-up refresh lands.
func (s *Store) MarkInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.load()
	if !cur.connected {
		return ErrNotConnected
	}
	next := cur.snap.Copy()
	next.Player.Initialized = true
	s.publishLocked(true, next)
	return nil
}

func (s *Store) publishLocked(connected bool, snap inter.Snapshot) {
	e := &entry{
		version:   s.load().version + 1,
		connected: connected,
		snap:      snap,
	}
	s.cur.Store(e)

	for _, ch := range s.subs {
		u := Update{Version: e.version, Connected: connected, Snapshot: snap.Copy()}
		// Drop the oldest pending update so a slow reader always ends up
		// with the latest one.
		select {
		case ch <- u:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- u:
			default:
			}
		}
	}
}

// Subscribe returns a channel receiving every publication and a function
// that cancels the subscription. The channel holds at most buf pending
// updates (minimum 1); older ones are dropped in favour of newer.
func (s *Store) Subscribe(buf int) (<-chan Update, func()) {
	if buf < 1 {
		buf = 1
	}
	ch := make(chan Update, buf)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// SetRefresher registers the function RequestRefresh delegates to.
func (s *Store) SetRefresher(fn RefreshFunc) {
	s.mu.Lock()
	s.refresher = fn
	s.mu.Unlock()
}

// RequestRefresh asks the registered refresher for fresh state.
func (s *Store) RequestRefresh(ctx context.Context) error {
	s.mu.Lock()
	fn := s.refresher
	s.mu.Unlock()
	if fn == nil {
		return ErrNoRefresher
	}
	return fn(ctx)
}
