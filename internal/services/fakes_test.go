package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"awguestbook/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[int64]*domain.Event
	nextID    int64
	createErr error
	stats     *domain.EventStats
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[int64]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetOwned(_ context.Context, id, userID int64) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok && e.UserID == userID {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByUserID(_ context.Context, userID int64, includeArchived bool) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.UserID != userID {
			continue
		}
		if e.IsArchived && !includeArchived {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, e *domain.Event) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) Stats(_ context.Context, _ int64) (*domain.EventStats, error) {
	if f.stats != nil {
		return f.stats, nil
	}
	return &domain.EventStats{}, nil
}

// fakeGuestRepo is an in-memory GuestRepository for tests. It resolves
// guest ownership through the fakeEventRepo it is built with.
type fakeGuestRepo struct {
	events    *fakeEventRepo
	byID      map[int64]*domain.Guest
	nextID    int64
	createErr error
}

func newFakeGuestRepo(events *fakeEventRepo) *fakeGuestRepo {
	return &fakeGuestRepo{events: events, byID: make(map[int64]*domain.Guest), nextID: 1}
}

func (f *fakeGuestRepo) Create(_ context.Context, g *domain.Guest) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.QRToken == g.QRToken {
			return domain.ErrConflict
		}
	}
	g.ID = f.nextID
	f.nextID++
	g.QRCode = domain.FormatQRCode(g.ID, g.QRToken)
	f.byID[g.ID] = g
	return nil
}

func (f *fakeGuestRepo) GetByID(_ context.Context, id int64) (*domain.Guest, error) {
	if g, ok := f.byID[id]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGuestRepo) GetByIDAndToken(_ context.Context, id int64, token string) (*domain.Guest, error) {
	if g, ok := f.byID[id]; ok && g.QRToken == token {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGuestRepo) Update(_ context.Context, g *domain.Guest) error {
	if _, ok := f.byID[g.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[g.ID] = g
	return nil
}

func (f *fakeGuestRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeGuestRepo) ListByEvent(_ context.Context, eventID int64, search string) ([]*domain.Guest, error) {
	var out []*domain.Guest
	for _, g := range f.byID {
		if g.EventID == eventID && matchesSearch(g, search) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGuestRepo) ListByOwner(_ context.Context, userID int64, search string) ([]*domain.Guest, error) {
	var out []*domain.Guest
	for _, g := range f.byID {
		e, ok := f.events.byID[g.EventID]
		if ok && e.UserID == userID && matchesSearch(g, search) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGuestRepo) StatsByEvent(_ context.Context, eventID int64) (*domain.GuestStats, error) {
	stats := &domain.GuestStats{}
	for _, g := range f.byID {
		if g.EventID == eventID {
			countGuest(stats, g)
		}
	}
	return stats, nil
}

func (f *fakeGuestRepo) StatsByOwner(_ context.Context, userID int64) (*domain.GuestStats, error) {
	stats := &domain.GuestStats{}
	for _, g := range f.byID {
		if e, ok := f.events.byID[g.EventID]; ok && e.UserID == userID {
			countGuest(stats, g)
		}
	}
	return stats, nil
}

func (f *fakeGuestRepo) CheckIn(_ context.Context, id int64) (*domain.Guest, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	g.Status = domain.StatusCheckedIn
	g.CheckedInAt = &now
	g.UpdatedAt = now
	return g, nil
}

func matchesSearch(g *domain.Guest, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(g.Nama), search) ||
		strings.Contains(strings.ToLower(g.Email), search) ||
		strings.Contains(g.Telepon, search)
}

func countGuest(stats *domain.GuestStats, g *domain.Guest) {
	stats.Total++
	if g.Status == domain.StatusCheckedIn {
		stats.CheckedIn++
	} else {
		stats.Pending++
	}
	y1, m1, d1 := g.CreatedAt.Date()
	y2, m2, d2 := time.Now().Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		stats.Today++
	}
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID   map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) SetResetToken(_ context.Context, userID int64, token string, expires time.Time) error {
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = &token
	u.ResetExpires = &expires
	return nil
}

func (f *fakeUserRepo) GetByResetToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetExpires != nil && u.ResetExpires.After(time.Now()) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePasswordAndClearReset(_ context.Context, userID int64, passwordHash string) error {
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetExpires = nil
	return nil
}

// fakeSessionRepo is an in-memory SessionRepository for tests.
type fakeSessionRepo struct {
	byToken map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byToken: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.Session) error {
	f.byToken[s.Token] = s
	return nil
}

func (f *fakeSessionRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	if s, ok := f.byToken[token]; ok && s.ExpiresAt.After(time.Now()) {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSessionRepo) Delete(_ context.Context, token string) error {
	delete(f.byToken, token)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for token, s := range f.byToken {
		if !s.ExpiresAt.After(time.Now()) {
			delete(f.byToken, token)
			n++
		}
	}
	return n, nil
}

// fakeHasher implements domain.PasswordHasher without real bcrypt work.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(userID int64, _, _ string, _ time.Duration) (string, error) {
	return "api-token-" + strconv.FormatInt(userID, 10), nil
}

// fakeEmailService records password reset sends.
type fakeEmailService struct {
	sent []*domain.PasswordResetEmailData
	err  error
}

func (f *fakeEmailService) SendPasswordReset(_ context.Context, data *domain.PasswordResetEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
