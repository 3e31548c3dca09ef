package handler

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/lfmelo/stockboard/internal/model"
	"github.com/lfmelo/stockboard/internal/queue"
	"github.com/lfmelo/stockboard/internal/repository"
)

// fakeUserStore is an in-memory UserStore enforcing the same email
// uniqueness the real schema does.
type fakeUserStore struct {
	accounts map[uint64]model.Account
	nextID   uint64

	// raceOnCreate simulates losing the check-then-insert race: the
	// existence pre-check sees nothing, but the insert hits the unique index.
	raceOnCreate bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{accounts: map[uint64]model.Account{}, nextID: 1}
}

func (s *fakeUserStore) seed(name, email, passwordHash string) model.Account {
	a := model.Account{ID: s.nextID, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	s.accounts[a.ID] = a
	s.nextID++
	return a
}

func (s *fakeUserStore) Create(_ context.Context, name, email, passwordHash string) (uint64, error) {
	if s.raceOnCreate {
		return 0, repository.ErrEmailExists
	}
	for _, a := range s.accounts {
		if a.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	return s.seed(name, email, passwordHash).ID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.Account, error) {
	if s.raceOnCreate {
		return model.Account{}, repository.ErrNotFound
	}
	for _, a := range s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return model.Account{}, repository.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return model.Account{}, repository.ErrNotFound
	}
	return a, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.Account, error) {
	out := make([]model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, model.Account{ID: a.ID, Name: a.Name, Email: a.Email})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeUserStore) EmailTakenByOther(_ context.Context, email string, id uint64) (bool, error) {
	for _, a := range s.accounts {
		if a.Email == email && a.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id uint64, name, email string) error {
	a, ok := s.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, other := range s.accounts {
		if other.Email == email && other.ID != id {
			return repository.ErrEmailExists
		}
	}
	a.Name, a.Email = name, email
	s.accounts[id] = a
	return nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id uint64, passwordHash string) error {
	a, ok := s.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.PasswordHash = passwordHash
	s.accounts[id] = a
	return nil
}

func (s *fakeUserStore) UpdatePreferences(_ context.Context, id uint64, u model.PreferenceUpdate) error {
	a, ok := s.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if u.Theme != nil {
		a.Theme = sql.NullString{String: *u.Theme, Valid: true}
	}
	if u.NotificationsEnabled != nil {
		a.NotificationsEnabled = sql.NullBool{Bool: *u.NotificationsEnabled, Valid: true}
	}
	s.accounts[id] = a
	return nil
}

// fakeCommentStore is an in-memory CommentStore keyed by company.
type fakeCommentStore struct {
	users     *fakeUserStore
	byCompany map[string][]model.Comment
	nextID    uint64
}

func newFakeCommentStore(users *fakeUserStore) *fakeCommentStore {
	return &fakeCommentStore{users: users, byCompany: map[string][]model.Comment{}, nextID: 1}
}

func (s *fakeCommentStore) ListByCompany(_ context.Context, companyID string) ([]model.Comment, error) {
	return s.byCompany[companyID], nil
}

func (s *fakeCommentStore) Add(ctx context.Context, userID uint64, companyID, content string) (model.Comment, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.Comment{}, err
	}
	cm := model.Comment{
		ID:        s.nextID,
		Username:  author.Name,
		CompanyID: companyID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.byCompany[companyID] = append(s.byCompany[companyID], cm)
	return cm, nil
}

// fakePublisher records events on channels so tests can wait for the
// handlers' fire-and-forget goroutines.
type fakePublisher struct {
	registered chan queue.UserRegisteredEvent
	commented  chan queue.CommentPostedEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{
		registered: make(chan queue.UserRegisteredEvent, 1),
		commented:  make(chan queue.CommentPostedEvent, 1),
	}
}

func (p *fakePublisher) UserRegistered(_ context.Context, e queue.UserRegisteredEvent) error {
	p.registered <- e
	return nil
}

func (p *fakePublisher) CommentPosted(_ context.Context, e queue.CommentPostedEvent) error {
	p.commented <- e
	return nil
}
