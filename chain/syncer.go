package chain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-honey-hive/economy"
	"github.com/rony4d/go-honey-hive/gamestate"
	"github.com/rony4d/go-honey-hive/honey/catalog"
	"github.com/rony4d/go-honey-hive/metrics"
)

// DefaultRefreshInterval matches the polling period of the web client.
const DefaultRefreshInterval = 3 * time.Second

// Syncer keeps a gamestate.Store fed with snapshots. It is the store's
// only writer besides connect and disconnect.
type Syncer struct {
	reader   Reader
	store    *gamestate.Store
	catalog  *catalog.Catalog
	calc     *economy.Calculator
	interval time.Duration
	log      logrus.FieldLogger
	now      func() time.Time

	mu sync.Mutex // one refresh at a time, so publications stay ordered
}

// NewSyncer creates a syncer and registers it as the store's refresher.
func NewSyncer(r Reader, store *gamestate.Store, calc *economy.Calculator, interval time.Duration, log logrus.FieldLogger) *Syncer {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	s := &Syncer{
		reader:   r,
		store:    store,
		catalog:  calc.Catalog,
		calc:     calc,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
	store.SetRefresher(s.Refresh)
	return s
}

// Refresh fetches one snapshot for the connected wallet and publishes it.
// On failure the previously published snapshot stays in place.
func (s *Syncer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Connected() {
		return gamestate.ErrNotConnected
	}
	addr := s.store.Address()

	start := time.Now()
	snap, err := FetchSnapshot(ctx, s.reader, addr, s.catalog, s.now())
	metrics.ObserveRefresh(time.Since(start).Seconds(), err)
	if err != nil {
		s.log.WithError(err).WithField("player", addr.Hex()).Warn("Snapshot refresh failed")
		return err
	}

	if err := s.store.Replace(snap); err != nil {
		// The wallet changed while the fetch was in flight.
		if errors.Is(err, gamestate.ErrWrongAccount) {
			s.log.WithField("player", addr.Hex()).Debug("Dropped snapshot of previous wallet")
		}
		return err
	}

	metrics.ObserveStats(snap.Network.CurrentBlock, s.calc.Compute(snap))
	s.log.WithFields(logrus.Fields{
		"player": addr.Hex(),
		"block":  snap.Network.CurrentBlock,
	}).Trace("Snapshot refreshed")
	return nil
}

// Run refreshes on every interval tick and, when the reader can push new
// heads, on every new block. It returns when ctx is done.
func (s *Syncer) Run(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil && !errors.Is(err, gamestate.ErrNotConnected) {
		s.log.WithError(err).Debug("Initial refresh failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	heads, sub := s.subscribe(ctx)
	var subErr <-chan error
	if sub != nil {
		defer sub.Unsubscribe()
		subErr = sub.Err()
	}

	var last idx.Block
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.refreshLogged(ctx)
		case block := <-heads:
			if block <= last {
				continue
			}
			last = block
			s.refreshLogged(ctx)
		case err := <-subErr:
			if ctx.Err() != nil {
				return nil
			}
			s.log.WithError(err).Warn("Head subscription dropped, polling only")
			heads, subErr = nil, nil
		}
	}
}

func (s *Syncer) refreshLogged(ctx context.Context) {
	err := s.Refresh(ctx)
	if err != nil && ctx.Err() == nil && !errors.Is(err, gamestate.ErrNotConnected) {
		s.log.WithError(err).Debug("Refresh skipped")
	}
}

func (s *Syncer) subscribe(ctx context.Context) (<-chan idx.Block, Subscription) {
	hn, ok := s.reader.(HeadNotifier)
	if !ok {
		return nil, nil
	}
	ch := make(chan idx.Block, 16)
	sub, err := hn.SubscribeHeads(ctx, ch)
	if err != nil {
		s.log.WithError(err).Info("New head subscription unavailable, polling every ", s.interval)
		return nil, nil
	}
	return ch, sub
}
