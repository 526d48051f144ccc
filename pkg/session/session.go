// Package session owns the feed load lifecycle, the source list and the generated cards.
// All mutations of that state are serialized by the session lock, fetching and card
// generation run outside of it.
package session

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsdeck/pkg/domain"
	"github.com/umputun/newsdeck/pkg/scoring"
	"github.com/umputun/newsdeck/pkg/sequence"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/override_store.go -pkg mocks -skip-ensure -fmt goimports . OverrideStore
//go:generate moq -out mocks/history.go -pkg mocks -skip-ensure -fmt goimports . HistoryProvider

// Fetcher retrieves publishers and content
type Fetcher interface {
	FetchSources(ctx context.Context) ([]domain.Source, error)
	FetchContent(ctx context.Context) ([]domain.ContentItem, error)
}

// OverrideStore persists user choices of enabled publishers
type OverrideStore interface {
	LoadOverrides(ctx context.Context) ([]domain.Override, error)
	SetEnabled(ctx context.Context, publisherID string, enabled bool) error
}

// HistoryProvider returns recently visited registrable domains, most recent first
type HistoryProvider interface {
	RecentDomains(ctx context.Context, limit int) ([]string, error)
}

// Phase is the stage of the load lifecycle
type Phase string

// enum of phases
const (
	PhaseInitial Phase = "initial"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// State is a snapshot of the session. Cards is set for success only, Err for failure only.
type State struct {
	Phase Phase
	Cards []domain.Card
	Err   error
}

// Config holds session parameters, zero values replaced by defaults
type Config struct {
	RecentDomainsLimit int
	LoadTimeout        time.Duration
	PersistTimeout     time.Duration
	Scorer             *scoring.Scorer
	Sequencer          *sequence.Sequencer
}

// Session is the stateful owner of the feed
type Session struct {
	fetcher   Fetcher
	store     OverrideStore
	history   HistoryProvider
	scorer    *scoring.Scorer
	sequencer *sequence.Sequencer

	recentLimit    int
	loadTimeout    time.Duration
	persistTimeout time.Duration

	ctx    context.Context // canceled by Close
	cancel context.CancelFunc
	wg     sync.WaitGroup // running load and pending writes

	mu        sync.Mutex
	state     State
	sources   []domain.Source
	inflight  chan struct{} // closed when the running load completes
	persisted chan struct{} // closed when the last queued write completes
	subs      []chan State
}

// New makes a session in the initial state. store and history are optional.
func New(fetcher Fetcher, store OverrideStore, history HistoryProvider, cfg Config) *Session {
	if cfg.RecentDomainsLimit <= 0 {
		cfg.RecentDomainsLimit = 25
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 2 * time.Minute
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 5 * time.Second
	}
	if cfg.Scorer == nil {
		cfg.Scorer = scoring.New()
	}
	if cfg.Sequencer == nil {
		cfg.Sequencer = sequence.New()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ctx:            ctx,
		cancel:         cancel,
		fetcher:        fetcher,
		store:          store,
		history:        history,
		scorer:         cfg.Scorer,
		sequencer:      cfg.Sequencer,
		recentLimit:    cfg.RecentDomainsLimit,
		loadTimeout:    cfg.LoadTimeout,
		persistTimeout: cfg.PersistTimeout,
		state:          State{Phase: PhaseInitial},
	}
}

// Load fetches sources and content and generates the cards.
// It does nothing if the feed is already loaded. A call made while another load is running
// waits for that load and returns its outcome instead of starting a new one.
// The load itself is detached from ctx and bounded by LoadTimeout, ctx only limits the wait.
// Returns the fetch error if the session ends up in failure.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	var done chan struct{}
	switch s.state.Phase {
	case PhaseSuccess:
		s.mu.Unlock()
		return nil
	case PhaseLoading:
		done = s.inflight
	default:
		done = make(chan struct{})
		s.inflight = done
		s.setState(State{Phase: PhaseLoading})
		loadCtx, cancel := context.WithTimeout(s.ctx, s.loadTimeout)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer close(done)
			defer cancel()
			s.load(loadCtx)
		}()
	}
	s.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if st := s.State(); st.Phase == PhaseFailure {
		return st.Err
	}
	return nil
}

// load runs a single fetch and generation and stores the outcome
func (s *Session) load(ctx context.Context) {
	st := time.Now()
	sources, items, err := s.fetch(ctx)
	if err != nil {
		lgr.Printf("[WARN] feed load failed: %v", err)
		s.mu.Lock()
		s.setState(State{Phase: PhaseFailure, Err: err})
		s.mu.Unlock()
		return
	}

	sources = domain.ApplyOverrides(sources, s.overrides(ctx))
	cards := s.generate(items, sources, s.recentDomains(ctx))

	s.mu.Lock()
	s.sources = sources
	s.setState(State{Phase: PhaseSuccess, Cards: cards})
	s.mu.Unlock()

	lgr.Printf("[INFO] feed loaded in %v, %d sources, %d items, %d cards",
		time.Since(st).Truncate(time.Millisecond), len(sources), len(items), len(cards))
}

// ToggleSource sets the enabled flag of a known source and relabels the items of that source
// in the current cards. Cards are not regenerated, so items of a disabled source stay in place
// until the next load. The flag is persisted in background, in toggle order.
// Ignored unless the feed is loaded.
func (s *Session) ToggleSource(ctx context.Context, source domain.Source, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != PhaseSuccess {
		lgr.Printf("[DEBUG] toggle of %s ignored, session is %s", source.ID, s.state.Phase)
		return
	}
	idx := slices.IndexFunc(s.sources, func(src domain.Source) bool { return src.ID == source.ID })
	if idx < 0 {
		lgr.Printf("[DEBUG] toggle of unknown source %s ignored", source.ID)
		return
	}

	updated := s.sources[idx]
	updated.Enabled = enabled
	sources := slices.Clone(s.sources)
	sources[idx] = updated
	s.sources = sources

	s.persist(ctx, updated.ID, enabled)

	cards := make([]domain.Card, len(s.state.Cards))
	for i, card := range s.state.Cards {
		for _, it := range card.AllItems() {
			if it.Source.ID == updated.ID {
				card = card.Replacing(it, it.WithSource(updated))
			}
		}
		cards[i] = card
	}
	s.setState(State{Phase: PhaseSuccess, Cards: cards})
	lgr.Printf("[INFO] source %s (%s) enabled=%v", updated.ID, updated.Name, enabled)
}

// State returns a snapshot of the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Sources returns a copy of the current source list
func (s *Session) Sources() []domain.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.sources)
}

// SourcesByCategory groups current sources by their category, keeping list order
func (s *Session) SourcesByCategory() map[string][]domain.Source {
	res := map[string][]domain.Source{}
	for _, src := range s.Sources() {
		res[src.Category] = append(res[src.Category], src)
	}
	return res
}

// Subscribe returns a channel receiving the current state and every later transition.
// Only the latest state is kept if the reader is slow. The channel is closed when ctx is done
// or by Close.
func (s *Session) Subscribe(ctx context.Context) <-chan State {
	ch := make(chan State, 1)
	s.mu.Lock()
	ch <- s.state.clone()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.ctx.Done():
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx := slices.Index(s.subs, ch); idx >= 0 {
			s.subs = slices.Delete(s.subs, idx, idx+1)
			close(ch)
		}
	}()
	return ch
}

// Close stops a running load, waits for pending writes of source flags and releases all subscribers
func (s *Session) Close() {
	s.cancel()
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

// persist writes the flag to the store in background. Writes are chained so the store sees
// them in toggle order. Must be called with lock held.
func (s *Session) persist(ctx context.Context, publisherID string, enabled bool) {
	if s.store == nil {
		return
	}
	prev, done := s.persisted, make(chan struct{})
	s.persisted = done
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		defer cancel()
		if prev != nil {
			<-prev
		}
		if err := s.store.SetEnabled(persistCtx, publisherID, enabled); err != nil {
			lgr.Printf("[WARN] failed to persist source %s enabled=%v: %v", publisherID, enabled, err)
			return
		}
		lgr.Printf("[DEBUG] persisted source %s enabled=%v", publisherID, enabled)
	}()
}

// fetch runs both fetches concurrently and waits for both. If both fail the sources error wins.
func (s *Session) fetch(ctx context.Context) ([]domain.Source, []domain.ContentItem, error) {
	var (
		sources          []domain.Source
		items            []domain.ContentItem
		srcErr, itemsErr error
	)

	// no errgroup context here, a failure must not cancel the other fetch and change its error
	var g errgroup.Group
	g.Go(func() error {
		sources, srcErr = s.fetcher.FetchSources(ctx)
		return srcErr
	})
	g.Go(func() error {
		items, itemsErr = s.fetcher.FetchContent(ctx)
		return itemsErr
	})
	_ = g.Wait()

	if srcErr != nil {
		return nil, nil, fmt.Errorf("fetch sources: %w", srcErr)
	}
	if itemsErr != nil {
		return nil, nil, fmt.Errorf("fetch content: %w", itemsErr)
	}
	return sources, items, nil
}

func (s *Session) overrides(ctx context.Context) []domain.Override {
	if s.store == nil {
		return nil
	}
	res, err := s.store.LoadOverrides(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to load source overrides, using defaults: %v", err)
		return nil
	}
	return res
}

func (s *Session) recentDomains(ctx context.Context) []string {
	if s.history == nil {
		return nil
	}
	res, err := s.history.RecentDomains(ctx, s.recentLimit)
	if err != nil {
		lgr.Printf("[WARN] failed to get recent domains: %v", err)
		return nil
	}
	return res
}

// generate scores, sorts and sequences. It works on its own copies and holds no session lock.
func (s *Session) generate(items []domain.ContentItem, sources []domain.Source, recent []string) []domain.Card {
	scored := s.scorer.Score(items, slices.Clone(sources), recent)
	scoring.SortByScore(scored)
	cards := s.sequencer.Generate(scored)
	lgr.Printf("[DEBUG] scored %d of %d items, generated %d cards", len(scored), len(items), len(cards))
	return cards
}

// setState stores the new state and notifies subscribers, must be called with lock held
func (s *Session) setState(st State) {
	s.state = st
	for _, ch := range s.subs {
		select {
		case <-ch: // drop stale state
		default:
		}
		select {
		case ch <- st.clone():
		default:
		}
	}
}

func (st State) clone() State {
	st.Cards = slices.Clone(st.Cards)
	return st
}
