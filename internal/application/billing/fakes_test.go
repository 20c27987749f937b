package billing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/billing"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

type fakeDuesRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*billing.DuesRecord
	saveErr error
}

func newFakeDuesRepo() *fakeDuesRepo {
	return &fakeDuesRepo{records: make(map[uuid.UUID]*billing.DuesRecord)}
}

func (r *fakeDuesRepo) Save(_ context.Context, record *billing.DuesRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *fakeDuesRepo) Update(ctx context.Context, record *billing.DuesRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.ID]; !ok {
		return shared.ErrNotFound
	}
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *fakeDuesRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.DuesRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *fakeDuesRepo) FindByProfile(_ context.Context, profileID uuid.UUID, _ shared.Filter) ([]billing.DuesRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []billing.DuesRecord
	for _, record := range r.records {
		if record.ProfileID == profileID {
			out = append(out, *record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

func (r *fakeDuesRepo) FindByProfileAndPeriod(_ context.Context, profileID uuid.UUID, month, year int) (*billing.DuesRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.ProfileID == profileID && record.Month == month && record.Year == year {
			clone := *record
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDuesRepo) FindUnpaidOverdue(_ context.Context, asOf time.Time, _ shared.Filter) ([]billing.DuesRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []billing.DuesRecord
	for _, record := range r.records {
		if !record.Paid && record.DueDate.Before(asOf) {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *fakeDuesRepo) MarkPaid(_ context.Context, id uuid.UUID, paymentID string, paidAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return false, shared.ErrNotFound
	}
	return record.MarkPaid(paymentID, paidAt), nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*membership.MemberProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*membership.MemberProfile)}
}

func (r *fakeProfileRepo) put(profile *membership.MemberProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	r.profiles[profile.ID] = &clone
}

func (r *fakeProfileRepo) Save(_ context.Context, profile *membership.MemberProfile) error {
	r.put(profile)
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *membership.MemberProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; !ok {
		return shared.ErrNotFound
	}
	clone := *profile
	r.profiles[profile.ID] = &clone
	return nil
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*membership.MemberProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeProfileRepo) FindByEmail(context.Context, string) (*membership.MemberProfile, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeProfileRepo) FindByDocumentID(context.Context, string) (*membership.MemberProfile, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeProfileRepo) FindByChapter(context.Context, uuid.UUID, shared.Filter) ([]membership.MemberProfile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) FindAll(context.Context, shared.Filter) ([]membership.MemberProfile, error) {
	return nil, nil
}

type fakeGateway struct {
	mu          sync.Mutex
	payments    map[string]*billing.Payment
	preference  *billing.Preference
	prefErr     error
	getErr      error
	createCalls int
	lastRequest billing.PreferenceRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		payments: make(map[string]*billing.Payment),
		preference: &billing.Preference{
			ID:               "pref-1",
			InitPoint:        "https://checkout.example.com/pref-1",
			SandboxInitPoint: "https://sandbox.checkout.example.com/pref-1",
		},
	}
}

func (g *fakeGateway) CreatePreference(_ context.Context, req billing.PreferenceRequest) (*billing.Preference, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	g.lastRequest = req
	if g.prefErr != nil {
		return nil, g.prefErr
	}
	return g.preference, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, paymentID string) (*billing.Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.getErr != nil {
		return nil, g.getErr
	}
	payment, ok := g.payments[paymentID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return payment, nil
}

type fakeDedup struct {
	mu     sync.Mutex
	seen   map[string]bool
	err    error
	closed bool
}

func newFakeDedup() *fakeDedup {
	return &fakeDedup{seen: make(map[string]bool)}
}

func (d *fakeDedup) MarkProcessed(_ context.Context, id string, _ time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	if d.seen[id] {
		return false, nil
	}
	d.seen[id] = true
	return true, nil
}

func (d *fakeDedup) IsProcessed(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[id], d.err
}

func (d *fakeDedup) Close() error {
	d.closed = true
	return nil
}
