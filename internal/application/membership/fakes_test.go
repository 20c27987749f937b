package membership

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*membership.MemberProfile
	saveErr  error
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
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.DocumentID == profile.DocumentID || existing.Email == profile.Email {
			return shared.ErrAlreadyExists
		}
	}
	clone := *profile
	r.profiles[profile.ID] = &clone
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

func (r *fakeProfileRepo) FindByEmail(_ context.Context, email string) (*membership.MemberProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, profile := range r.profiles {
		if profile.Email == email {
			clone := *profile
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProfileRepo) FindByDocumentID(_ context.Context, documentID string) (*membership.MemberProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, profile := range r.profiles {
		if profile.DocumentID == documentID {
			clone := *profile
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProfileRepo) FindByChapter(_ context.Context, chapterID uuid.UUID, _ shared.Filter) ([]membership.MemberProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []membership.MemberProfile
	for _, profile := range r.profiles {
		if profile.ChapterID == chapterID {
			out = append(out, *profile)
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) FindAll(context.Context, shared.Filter) ([]membership.MemberProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []membership.MemberProfile
	for _, profile := range r.profiles {
		out = append(out, *profile)
	}
	return out, nil
}

type fakeChapterRepo struct {
	mu       sync.Mutex
	chapters []*membership.Chapter
}

func (r *fakeChapterRepo) Save(_ context.Context, chapter *membership.Chapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.chapters {
		if existing.ID == chapter.ID {
			clone := *chapter
			r.chapters[i] = &clone
			return nil
		}
	}
	clone := *chapter
	r.chapters = append(r.chapters, &clone)
	return nil
}

func (r *fakeChapterRepo) FindByID(_ context.Context, id uuid.UUID) (*membership.Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, chapter := range r.chapters {
		if chapter.ID == id {
			clone := *chapter
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeChapterRepo) FindAll(context.Context, shared.Filter) ([]membership.Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]membership.Chapter, 0, len(r.chapters))
	for _, chapter := range r.chapters {
		out = append(out, *chapter)
	}
	return out, nil
}

func (r *fakeChapterRepo) FindFirst(context.Context) (*membership.Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.chapters) == 0 {
		return nil, shared.ErrNotFound
	}
	clone := *r.chapters[0]
	return &clone, nil
}

// fakeIdentity mimics the external identity service: an email/password
// registry that assigns user ids.
type fakeIdentity struct {
	mu        sync.Mutex
	users     map[string]fakeIdentityUser // keyed by email
	signUpErr error
	deleted   []uuid.UUID
}

type fakeIdentityUser struct {
	id       uuid.UUID
	password string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: make(map[string]fakeIdentityUser)}
}

func (f *fakeIdentity) SignUp(_ context.Context, email, password string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signUpErr != nil {
		return uuid.Nil, f.signUpErr
	}
	if _, ok := f.users[email]; ok {
		return uuid.Nil, membership.ErrAlreadyRegistered
	}
	id := uuid.New()
	f.users[email] = fakeIdentityUser{id: id, password: password}
	return id, nil
}

func (f *fakeIdentity) VerifyPassword(_ context.Context, email, password string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok || user.password != password {
		return uuid.Nil, membership.ErrInvalidCredentials
	}
	return user.id, nil
}

func (f *fakeIdentity) DeleteUser(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	for email, user := range f.users {
		if user.id == id {
			delete(f.users, email)
			return nil
		}
	}
	return nil
}
