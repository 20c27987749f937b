package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ruralsoc/backend/internal/domain/billing"
	"github.com/ruralsoc/backend/internal/domain/commerce"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

type stubProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*membership.MemberProfile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[uuid.UUID]*membership.MemberProfile)}
}

func (r *stubProfileRepo) put(p *membership.MemberProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.profiles[p.ID] = &clone
}

func (r *stubProfileRepo) Save(_ context.Context, p *membership.MemberProfile) error {
	r.put(p)
	return nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *membership.MemberProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; !ok {
		return shared.ErrNotFound
	}
	clone := *p
	r.profiles[p.ID] = &clone
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*membership.MemberProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) FindByEmail(context.Context, string) (*membership.MemberProfile, error) {
	return nil, shared.ErrNotFound
}

func (r *stubProfileRepo) FindByDocumentID(context.Context, string) (*membership.MemberProfile, error) {
	return nil, shared.ErrNotFound
}

func (r *stubProfileRepo) FindByChapter(_ context.Context, chapterID uuid.UUID, _ shared.Filter) ([]membership.MemberProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []membership.MemberProfile
	for _, p := range r.profiles {
		if p.ChapterID == chapterID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProfileRepo) FindAll(context.Context, shared.Filter) ([]membership.MemberProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []membership.MemberProfile
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

type stubIdentity struct{}

func (stubIdentity) SignUp(context.Context, string, string) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (stubIdentity) VerifyPassword(context.Context, string, string) (uuid.UUID, error) {
	return uuid.Nil, membership.ErrInvalidCredentials
}

func (stubIdentity) DeleteUser(context.Context, uuid.UUID) error { return nil }

type stubDuesRepo struct {
	mu          sync.Mutex
	records     map[uuid.UUID]*billing.DuesRecord
	markPaidErr error
}

func newStubDuesRepo() *stubDuesRepo {
	return &stubDuesRepo{records: make(map[uuid.UUID]*billing.DuesRecord)}
}

func (r *stubDuesRepo) Save(_ context.Context, record *billing.DuesRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *stubDuesRepo) Update(_ context.Context, record *billing.DuesRecord) error {
	return r.Save(context.Background(), record)
}

func (r *stubDuesRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.DuesRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *stubDuesRepo) FindByProfile(context.Context, uuid.UUID, shared.Filter) ([]billing.DuesRecord, error) {
	return nil, nil
}

func (r *stubDuesRepo) FindByProfileAndPeriod(context.Context, uuid.UUID, int, int) (*billing.DuesRecord, error) {
	return nil, shared.ErrNotFound
}

func (r *stubDuesRepo) FindUnpaidOverdue(context.Context, time.Time, shared.Filter) ([]billing.DuesRecord, error) {
	return nil, nil
}

func (r *stubDuesRepo) MarkPaid(_ context.Context, id uuid.UUID, paymentID string, paidAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markPaidErr != nil {
		return false, r.markPaidErr
	}
	record, ok := r.records[id]
	if !ok {
		return false, shared.ErrNotFound
	}
	if record.Paid {
		return false, nil
	}
	record.Paid = true
	record.PaymentID = paymentID
	record.PaidAt = &paidAt
	return true, nil
}

type stubGateway struct {
	payments map[string]*billing.Payment
}

func (g *stubGateway) CreatePreference(context.Context, billing.PreferenceRequest) (*billing.Preference, error) {
	return &billing.Preference{ID: "pref-1", InitPoint: "https://checkout.example/p"}, nil
}

func (g *stubGateway) GetPayment(_ context.Context, paymentID string) (*billing.Payment, error) {
	payment, ok := g.payments[paymentID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return payment, nil
}

type stubChapterRepo struct {
	chapter *membership.Chapter
}

func (r *stubChapterRepo) Save(context.Context, *membership.Chapter) error { return nil }

func (r *stubChapterRepo) FindByID(_ context.Context, id uuid.UUID) (*membership.Chapter, error) {
	if r.chapter != nil && r.chapter.ID == id {
		return r.chapter, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubChapterRepo) FindAll(context.Context, shared.Filter) ([]membership.Chapter, error) {
	return nil, nil
}

func (r *stubChapterRepo) FindFirst(context.Context) (*membership.Chapter, error) {
	if r.chapter == nil {
		return nil, shared.ErrNotFound
	}
	return r.chapter, nil
}

// stubShopRepo admits up to capacity free-tier shops, then rejects with
// the live counts like the storage-level guard does.
type stubShopRepo struct {
	mu       sync.Mutex
	shops    map[uuid.UUID]*commerce.Shop
	capacity int64
}

func newStubShopRepo(capacity int64) *stubShopRepo {
	return &stubShopRepo{shops: make(map[uuid.UUID]*commerce.Shop), capacity: capacity}
}

func (r *stubShopRepo) Save(_ context.Context, shop *commerce.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *shop
	r.shops[shop.ID] = &clone
	return nil
}

func (r *stubShopRepo) Update(_ context.Context, shop *commerce.Shop) error {
	return r.Save(context.Background(), shop)
}

func (r *stubShopRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shops, id)
	return nil
}

func (r *stubShopRepo) FindByID(_ context.Context, id uuid.UUID) (*commerce.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shop, ok := r.shops[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *shop
	return &clone, nil
}

func (r *stubShopRepo) FindByChapter(context.Context, uuid.UUID, shared.Filter) ([]commerce.Shop, error) {
	return nil, nil
}

func (r *stubShopRepo) FindAll(context.Context, shared.Filter) ([]commerce.Shop, error) {
	return nil, nil
}

func (r *stubShopRepo) CountActiveFree(_ context.Context, chapterID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countLocked(chapterID), nil
}

func (r *stubShopRepo) countLocked(chapterID uuid.UUID) int64 {
	var used int64
	for _, shop := range r.shops {
		if shop.ChapterID == chapterID && shop.IsQuotaCounted() {
			used++
		}
	}
	return used
}

func (r *stubShopRepo) CreateWithinQuota(_ context.Context, shop *commerce.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if shop.IsQuotaCounted() {
		used := r.countLocked(shop.ChapterID)
		if used >= r.capacity {
			return &commerce.QuotaExceededError{
				ChapterID: shop.ChapterID,
				Used:      used,
				Limit:     r.capacity,
			}
		}
	}
	clone := *shop
	r.shops[shop.ID] = &clone
	return nil
}

type stubAuditRepo struct{}

func (stubAuditRepo) Append(context.Context, *commerce.AuditEntry) error { return nil }
