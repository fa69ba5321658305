package store

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/rolodex/internal/models"
	"github.com/desertthunder/rolodex/internal/services"
	"github.com/desertthunder/rolodex/internal/shared"
)

// Snapshot is a point-in-time copy of the store's state.
type Snapshot struct {
	Contacts []models.Contact
	Loading  bool
}

type state struct {
	contacts []models.Contact
	loading  int // fetches in flight
}

func (st *state) snapshot() Snapshot {
	return Snapshot{
		Contacts: append([]models.Contact{}, st.contacts...),
		Loading:  st.loading > 0,
	}
}

// Store is the shared contact list. The zero value is not usable; call [New].
type Store struct {
	client   services.ContactService
	logger   *log.Logger
	notifier Notifier
	recorder Recorder
	clock    func() time.Time

	ops  chan func(*state)
	quit chan struct{}
	done chan struct{}

	lifetime context.Context
	cancel   context.CancelFunc
	once     sync.Once

	final Snapshot // written by the actor before done is closed
}

// Option configures a [Store].
type Option func(*Store)

// WithLogger sets the logger. It also backs the default [Notifier].
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithNotifier sets where failures are reported. Defaults to [LogNotifier].
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithRecorder journals every mutation attempt.
func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// WithClock replaces [time.Now], which supplies ids for contacts the remote did not number.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// New creates a store backed by client and starts its actor. Callers must [Store.Close] it.
func New(client services.ContactService, opts ...Option) *Store {
	lifetime, cancel := context.WithCancel(context.Background())
	s := &Store{
		client:   client,
		clock:    time.Now,
		ops:      make(chan func(*state)),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		lifetime: lifetime,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = shared.NewLogger(io.Discard)
	}
	if s.notifier == nil {
		s.notifier = LogNotifier(s.logger)
	}

	go s.run()
	return s
}

func (s *Store) run() {
	st := &state{contacts: []models.Contact{}}
	defer close(s.done)
	defer func() {
		st.loading = 0
		s.final = st.snapshot()
	}()

	for {
		select {
		case op := <-s.ops:
			op(st)
		case <-s.quit:
			return
		}
	}
}

// do runs fn on the actor and waits for it to finish.
func (s *Store) do(fn func(*state)) error {
	ack := make(chan struct{})
	select {
	case s.ops <- func(st *state) { fn(st); close(ack) }:
	case <-s.quit:
		return ErrClosed
	}
	<-ack
	return nil
}

func (s *Store) closed() bool {
	select {
	case <-s.quit:
		return true
	default:
		return false
	}
}

// Close cancels an in-flight fetch, stops the actor and waits for it to exit.
// Later operations return [ErrClosed]; reads return the last state. Close is idempotent.
func (s *Store) Close() {
	s.once.Do(func() {
		s.cancel()
		close(s.quit)
	})
	<-s.done
}

// Load fetches the full list and replaces the local one with it.
//
// Loading is reported for the duration of the request. A cancelled fetch (by ctx or [Store.Close])
// returns nil and leaves the list untouched; any other failure is notified and returned.
func (s *Store) Load(ctx context.Context) error {
	if err := s.do(func(st *state) { st.loading++ }); err != nil {
		return err
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.lifetime, cancel)
	defer stop()

	s.logger.Debug("fetching contacts", "service", s.client.Name())
	contacts, err := s.client.ListContacts(fetchCtx)
	canceled := errors.Is(fetchCtx.Err(), context.Canceled)

	applyErr := s.do(func(st *state) {
		st.loading--
		if err == nil && !canceled {
			st.contacts = contacts
		}
	})
	if applyErr != nil {
		return nil
	}

	switch {
	case canceled:
		s.logger.Debug("fetch cancelled")
		return nil
	case err != nil:
		return s.fail(OpFetch, err)
	}
	s.logger.Debug("fetched contacts", "count", len(contacts))
	return nil
}

// Add creates a contact remotely and prepends it locally on success.
//
// The id comes from the remote when it returns one, otherwise from the clock in milliseconds.
// On failure nothing is inserted. A create that succeeds remotely is journaled even when the
// store closes before it can be applied; Add then returns [ErrClosed] and a zero contact.
func (s *Store) Add(ctx context.Context, fields models.ContactFields) (models.Contact, error) {
	if s.closed() {
		return models.Contact{}, ErrClosed
	}
	ctx = context.WithoutCancel(ctx)

	id, err := s.client.CreateContact(ctx, fields)
	if err != nil {
		s.record(ctx, OpCreate, 0, err)
		return models.Contact{}, s.fail(OpCreate, err)
	}

	cid := s.clock().UnixMilli()
	if id != nil {
		cid = *id
	}
	c := fields.Contact(cid)

	applyErr := s.do(func(st *state) {
		st.contacts = append([]models.Contact{c}, st.contacts...)
	})
	s.record(ctx, OpCreate, cid, nil)
	if applyErr != nil {
		return models.Contact{}, applyErr
	}
	return c, nil
}

// Update sends a partial update and merges it into every local entry with the id.
// An id missing locally is not an error.
func (s *Store) Update(ctx context.Context, id int64, patch models.ContactPatch) error {
	if s.closed() {
		return ErrClosed
	}
	ctx = context.WithoutCancel(ctx)

	if err := s.client.UpdateContact(ctx, id, patch); err != nil {
		s.record(ctx, OpUpdate, id, err)
		return s.fail(OpUpdate, err)
	}

	applyErr := s.do(func(st *state) {
		for i, c := range st.contacts {
			if c.ID == id {
				st.contacts[i] = patch.Apply(c)
			}
		}
	})
	s.record(ctx, OpUpdate, id, nil)
	return applyErr
}

// Delete removes a contact remotely, then every local entry with the id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if s.closed() {
		return ErrClosed
	}
	ctx = context.WithoutCancel(ctx)

	if err := s.client.DeleteContact(ctx, id); err != nil {
		s.record(ctx, OpDelete, id, err)
		return s.fail(OpDelete, err)
	}

	applyErr := s.do(func(st *state) {
		kept := make([]models.Contact, 0, len(st.contacts))
		for _, c := range st.contacts {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		st.contacts = kept
	})
	s.record(ctx, OpDelete, id, nil)
	return applyErr
}

func (s *Store) fail(op Op, err error) error {
	opErr := &OpError{Op: op, Err: err}
	s.notifier.Notify(opErr)
	return opErr
}

func (s *Store) record(ctx context.Context, op Op, id int64, err error) {
	if s.recorder == nil {
		return
	}
	if rerr := s.recorder.Record(ctx, op, id, err); rerr != nil {
		s.logger.Warn("failed to record activity", "op", op, "id", id, "error", rerr)
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	if err := s.do(func(st *state) { snap = st.snapshot() }); err != nil {
		<-s.done
		final := s.final
		final.Contacts = append([]models.Contact{}, final.Contacts...)
		return final
	}
	return snap
}

// Contacts returns a copy of the list, newest additions first.
func (s *Store) Contacts() []models.Contact {
	return s.Snapshot().Contacts
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	return s.Snapshot().Loading
}

// Get returns the first contact with id.
func (s *Store) Get(id int64) (models.Contact, bool) {
	return models.FindByID(s.Contacts(), id)
}

// Search returns contacts whose name contains query, ignoring case.
func (s *Store) Search(query string) []models.Contact {
	return models.FilterByName(s.Contacts(), query)
}
