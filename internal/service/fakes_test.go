package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cs23b1093/gigflow/internal/common"
	"github.com/cs23b1093/gigflow/internal/entity"
	"github.com/cs23b1093/gigflow/internal/repo"
	"github.com/cs23b1093/gigflow/internal/repo/repo_errors"

	"github.com/google/uuid"
)

// fakeStore is a mutex-backed in-memory stand-in for the Postgres layer.
// Its compare-and-swap and bulk-transition operations are atomic under the
// store mutex, which is exactly the contract the real store provides, so
// the concurrency tests exercise the coordinator against an honest model.
type fakeStore struct {
	mu    sync.Mutex
	gigs  map[string]entity.Gig
	bids  map[string]entity.Bid
	users map[string]entity.User

	// transientFailures makes the next N transactions fail with ErrTransient.
	transientFailures int
}

type fakeTxKey struct{}

func newFakeStore() *fakeStore {
	return &fakeStore{
		gigs:  make(map[string]entity.Gig),
		bids:  make(map[string]entity.Bid),
		users: make(map[string]entity.User),
	}
}

func newFakeRepositories(store *fakeStore) *repo.Repositories {
	return &repo.Repositories{
		Diagnostics: store,
		User:        &fakeUserRepo{store},
		Gig:         &fakeGigRepo{store},
		Bid:         &fakeBidRepo{store},
		Transactor:  store,
	}
}

func (s *fakeStore) Ping() error { return nil }

// WithTx serializes the whole callback under the store mutex and restores a
// snapshot when it fails, mimicking a rolled-back database transaction.
func (s *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transientFailures > 0 {
		s.transientFailures--
		return repo_errors.ErrTransient
	}

	snapGigs := copyMap(s.gigs)
	snapBids := copyMap(s.bids)

	if err := fn(context.WithValue(ctx, fakeTxKey{}, true)); err != nil {
		s.gigs = snapGigs
		s.bids = snapBids
		return err
	}

	return nil
}

func inTx(ctx context.Context) bool {
	return ctx.Value(fakeTxKey{}) != nil
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}

	return dst
}

// lock acquires the store mutex unless the context already runs inside a
// transaction, which holds it for the whole callback.
func (s *fakeStore) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}

	s.mu.Lock()
	return s.mu.Unlock
}

// --- users ---

type fakeUserRepo struct{ *fakeStore }

func (r *fakeUserRepo) CreateUser(ctx context.Context, input *entity.RegisterUserInput) (uuid.UUID, error) {
	defer r.lock(ctx)()

	for _, u := range r.users {
		if u.Email == input.Email {
			return uuid.Nil, repo_errors.ErrConflict
		}
	}

	id := uuid.New()
	r.users[id.String()] = entity.User{
		Id: id, Name: input.Name, Email: input.Email, Role: input.Role,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	return id, nil
}

func (r *fakeUserRepo) GetUserById(ctx context.Context, id string) (*entity.User, error) {
	defer r.lock(ctx)()

	u, ok := r.users[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &u, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	defer r.lock(ctx)()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

// --- gigs ---

type fakeGigRepo struct{ *fakeStore }

func (r *fakeGigRepo) CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error) {
	defer r.lock(ctx)()

	owner, err := uuid.Parse(input.OwnerId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	id := uuid.New()
	r.gigs[id.String()] = entity.Gig{
		Id: id, Title: input.Title, Description: input.Description, Budget: input.Budget,
		Status: common.Open, OwnerId: owner,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	return id, nil
}

func (r *fakeGigRepo) GetGigById(ctx context.Context, id string) (*entity.Gig, error) {
	defer r.lock(ctx)()

	g, ok := r.gigs[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &g, nil
}

func (r *fakeGigRepo) GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput, sort *entity.SortInput) ([]entity.Gig, error) {
	defer r.lock(ctx)()

	gigs := make([]entity.Gig, 0)
	for _, g := range r.gigs {
		if g.Status != common.Open {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(g.Title), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(g.Description), strings.ToLower(search)) {
			continue
		}
		gigs = append(gigs, g)
	}

	return gigs, nil
}

func (r *fakeGigRepo) GetGigsByOwnerId(ctx context.Context, ownerId string, status string, pg *entity.PaginationInput) ([]entity.Gig, error) {
	defer r.lock(ctx)()

	gigs := make([]entity.Gig, 0)
	for _, g := range r.gigs {
		if g.OwnerId.String() != ownerId {
			continue
		}
		if status != "" && g.Status != status {
			continue
		}
		gigs = append(gigs, g)
	}

	return gigs, nil
}

func (r *fakeGigRepo) UpdateGigById(ctx context.Context, id string, input *entity.UpdateGigInput) error {
	defer r.lock(ctx)()

	g, ok := r.gigs[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	if input.Title != "" {
		g.Title = input.Title
	}
	if input.Description != "" {
		g.Description = input.Description
	}
	if input.Budget != 0 {
		g.Budget = input.Budget
	}
	r.gigs[id] = g

	return nil
}

func (r *fakeGigRepo) DeleteGigById(ctx context.Context, id string) error {
	defer r.lock(ctx)()

	if _, ok := r.gigs[id]; !ok {
		return repo_errors.ErrNotFound
	}
	delete(r.gigs, id)

	return nil
}

func (r *fakeGigRepo) CompareAndSwapStatus(ctx context.Context, id string, expected, newStatus, hiredBy string, hiredAt time.Time) (bool, error) {
	defer r.lock(ctx)()

	g, ok := r.gigs[id]
	if !ok || g.Status != expected {
		return false, nil
	}

	g.Status = newStatus
	if hiredBy != "" {
		g.HiredBy = hiredBy
		g.HiredAt = hiredAt.Format(time.RFC3339)
	}
	r.gigs[id] = g

	return true, nil
}

// --- bids ---

type fakeBidRepo struct{ *fakeStore }

func (r *fakeBidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	defer r.lock(ctx)()

	for _, b := range r.bids {
		if b.GigId.String() == input.GigId && b.FreelancerId.String() == input.FreelancerId {
			return uuid.Nil, repo_errors.ErrConflict
		}
	}

	gigId, err := uuid.Parse(input.GigId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}
	freelancerId, err := uuid.Parse(input.FreelancerId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	id := uuid.New()
	r.bids[id.String()] = entity.Bid{
		Id: id, GigId: gigId, FreelancerId: freelancerId,
		Message: input.Message, Price: input.Price, Status: common.Pending,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	return id, nil
}

func (r *fakeBidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	defer r.lock(ctx)()

	b, ok := r.bids[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &b, nil
}

func (r *fakeBidRepo) GetBids(ctx context.Context, filter *entity.BidFilter, pg *entity.PaginationInput) ([]entity.Bid, error) {
	defer r.lock(ctx)()

	bids := make([]entity.Bid, 0)
	for _, b := range r.bids {
		if matchesFilter(b, filter) {
			bids = append(bids, b)
		}
	}

	return bids, nil
}

func (r *fakeBidRepo) CountBids(ctx context.Context, filter *entity.BidFilter) (int, error) {
	defer r.lock(ctx)()

	total := 0
	for _, b := range r.bids {
		if matchesFilter(b, filter) {
			total++
		}
	}

	return total, nil
}

func matchesFilter(b entity.Bid, filter *entity.BidFilter) bool {
	if filter == nil {
		return true
	}
	if filter.GigId != "" && b.GigId.String() != filter.GigId {
		return false
	}
	if filter.FreelancerId != "" && b.FreelancerId.String() != filter.FreelancerId {
		return false
	}
	if filter.Status != "" && b.Status != filter.Status {
		return false
	}

	return true
}

func (r *fakeBidRepo) CompareAndSwapStatus(ctx context.Context, id string, expected, newStatus string, at time.Time) (bool, error) {
	defer r.lock(ctx)()

	b, ok := r.bids[id]
	if !ok || b.Status != expected {
		return false, nil
	}

	b.Status = newStatus
	switch newStatus {
	case common.Hired:
		b.HiredAt = at.Format(time.RFC3339)
	case common.Rejected:
		b.RejectedAt = at.Format(time.RFC3339)
	}
	r.bids[id] = b

	return true, nil
}

func (r *fakeBidRepo) BulkTransition(ctx context.Context, gigId, excludeId, expected, newStatus, reason string, at time.Time) ([]entity.Bid, error) {
	defer r.lock(ctx)()

	transitioned := make([]entity.Bid, 0)
	for id, b := range r.bids {
		if b.GigId.String() != gigId || b.Status != expected || id == excludeId {
			continue
		}

		b.Status = newStatus
		if newStatus == common.Rejected {
			b.RejectedAt = at.Format(time.RFC3339)
			b.RejectedReason = reason
		}
		r.bids[id] = b
		transitioned = append(transitioned, b)
	}

	return transitioned, nil
}

// --- recording dispatcher ---

type dispatchedEvent struct {
	kind        string
	recipientId string
	gigTitle    string
	reason      string
	amount      float64
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []dispatchedEvent
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{}
}

func (d *recordingDispatcher) NotifyHired(freelancerId, gigTitle, clientName string, amount float64) {
	d.record(dispatchedEvent{kind: "hired", recipientId: freelancerId, gigTitle: gigTitle, amount: amount})
}

func (d *recordingDispatcher) NotifyRejected(freelancerId, gigTitle, reason string) {
	d.record(dispatchedEvent{kind: "rejected", recipientId: freelancerId, gigTitle: gigTitle, reason: reason})
}

func (d *recordingDispatcher) NotifyBidReceived(gigOwnerId, gigTitle, freelancerName string, amount float64) {
	d.record(dispatchedEvent{kind: "bid_received", recipientId: gigOwnerId, gigTitle: gigTitle, amount: amount})
}

func (d *recordingDispatcher) record(e dispatchedEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
}

func (d *recordingDispatcher) snapshot() []dispatchedEvent {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]dispatchedEvent, len(d.events))
	copy(out, d.events)

	return out
}

// waitFor polls until at least n events were recorded or the timeout expires.
func (d *recordingDispatcher) waitFor(n int, timeout time.Duration) []dispatchedEvent {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		events := d.snapshot()
		if len(events) >= n {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}

	return d.snapshot()
}
