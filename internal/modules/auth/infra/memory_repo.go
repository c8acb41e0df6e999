package infra

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
)

type memAccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account // id -> account
	byEmail  map[string]string          // email -> id
	friends  map[string]map[string]bool // id -> set of friend ids
}

func NewMemAccountRepo() domain.AccountRepo {
	return &memAccountRepo{
		accounts: make(map[string]*domain.Account),
		byEmail:  make(map[string]string),
		friends:  make(map[string]map[string]bool),
	}
}

func (r *memAccountRepo) Create(p domain.CreateAccountParams) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(p.Email)
	if _, ok := r.byEmail[email]; ok {
		return nil, domain.ErrEmailTaken
	}
	now := time.Now().UTC()
	a := &domain.Account{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     p.FullName,
		PasswordHash: p.PasswordHash,
		AvatarURL:    p.AvatarURL,
		IsVerified:   p.IsVerified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.accounts[a.ID] = a
	r.byEmail[email] = a.ID
	return copyAccount(a), nil
}

func (r *memAccountRepo) GetByID(id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyAccount(a), nil
}

func (r *memAccountRepo) GetByEmail(email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyAccount(r.accounts[id]), nil
}

func (r *memAccountRepo) ExistsByEmail(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (r *memAccountRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.accounts, id)
	delete(r.byEmail, a.Email)
	delete(r.friends, id)
	for _, set := range r.friends {
		delete(set, id)
	}
	return nil
}

func (r *memAccountRepo) SetVerificationToken(id, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.VerificationToken = &token
	a.VerificationExpiresAt = &expiresAt
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memAccountRepo) GetByVerificationToken(token string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.VerificationToken != nil && *a.VerificationToken == token {
			if a.VerificationExpiresAt != nil && time.Now().UTC().After(*a.VerificationExpiresAt) {
				return nil, domain.ErrTokenExpired
			}
			return copyAccount(a), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memAccountRepo) MarkVerified(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.IsVerified = true
	a.VerificationToken = nil
	a.VerificationExpiresAt = nil
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memAccountRepo) SetResetToken(id, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.ResetToken = &token
	a.ResetExpiresAt = &expiresAt
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memAccountRepo) GetByResetToken(token string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ResetToken != nil && *a.ResetToken == token {
			if a.ResetExpiresAt != nil && time.Now().UTC().After(*a.ResetExpiresAt) {
				return nil, domain.ErrTokenExpired
			}
			return copyAccount(a), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memAccountRepo) UpdatePassword(id, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.PasswordHash = newHash
	a.ResetToken = nil
	a.ResetExpiresAt = nil
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memAccountRepo) UpdateOnboarding(id string, p domain.OnboardingParams) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.FullName = p.FullName
	a.Bio = p.Bio
	a.Interests = p.Interests
	a.Location = p.Location
	a.IsOnboarded = true
	a.UpdatedAt = time.Now().UTC()
	return copyAccount(a), nil
}

func (r *memAccountRepo) ListRecommended(forID string, limit int) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	own := r.friends[forID]
	var out []domain.Account
	for id, a := range r.accounts {
		if id == forID || !a.IsOnboarded || own[id] {
			continue
		}
		out = append(out, *copyAccount(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memAccountRepo) ListFriends(id string) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Account
	for fid := range r.friends[id] {
		if a, ok := r.accounts[fid]; ok {
			out = append(out, *copyAccount(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *memAccountRepo) AddFriendship(a, b string) error {
	if a == b {
		return domain.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.accounts[b]; !ok {
		return domain.ErrNotFound
	}
	if r.friends[a] == nil {
		r.friends[a] = make(map[string]bool)
	}
	if r.friends[b] == nil {
		r.friends[b] = make(map[string]bool)
	}
	r.friends[a][b] = true
	r.friends[b][a] = true
	return nil
}

func (r *memAccountRepo) AreFriends(a, b string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.friends[a][b], nil
}

func copyAccount(a *domain.Account) *domain.Account {
	cp := *a
	return &cp
}

type memPendingRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.PendingRegistration
}

func NewMemPendingRepo() domain.PendingRepo {
	return &memPendingRepo{byEmail: make(map[string]*domain.PendingRegistration)}
}

func (r *memPendingRepo) Create(p domain.PendingRegistration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(p.Email)
	if old, ok := r.byEmail[email]; ok && !old.Expired(time.Now().UTC()) {
		return domain.ErrEmailTaken
	}
	p.Email = email
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.byEmail[email] = &p
	return nil
}

func (r *memPendingRepo) GetByToken(token string) (*domain.PendingRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, p := range r.byEmail {
		if p.Token == token {
			if p.Expired(time.Now().UTC()) {
				delete(r.byEmail, email)
				return nil, domain.ErrTokenExpired
			}
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memPendingRepo) GetByEmail(email string) (*domain.PendingRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(email)
	p, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.Expired(time.Now().UTC()) {
		delete(r.byEmail, email)
		return nil, domain.ErrTokenExpired
	}
	cp := *p
	return &cp, nil
}

func (r *memPendingRepo) DeleteByEmail(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byEmail, strings.ToLower(email))
	return nil
}

func (r *memPendingRepo) DeleteExpired() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	n := 0
	for email, p := range r.byEmail {
		if p.Expired(now) {
			delete(r.byEmail, email)
			n++
		}
	}
	return n, nil
}

type memFriendRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*domain.FriendRequest
}

func NewMemFriendRequestRepo() domain.FriendRequestRepo {
	return &memFriendRequestRepo{requests: make(map[string]*domain.FriendRequest)}
}

func (r *memFriendRequestRepo) Create(senderID, recipientID string) (*domain.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	fr := &domain.FriendRequest{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      domain.FriendRequestPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.requests[fr.ID] = fr
	cp := *fr
	return &cp, nil
}

func (r *memFriendRequestRepo) GetByID(id string) (*domain.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fr, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *fr
	return &cp, nil
}

func (r *memFriendRequestRepo) Accept(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fr, ok := r.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	fr.Status = domain.FriendRequestAccepted
	fr.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memFriendRequestRepo) ExistsBetween(a, b string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fr := range r.requests {
		if (fr.SenderID == a && fr.RecipientID == b) || (fr.SenderID == b && fr.RecipientID == a) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFriendRequestRepo) ListIncoming(recipientID string) ([]domain.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FriendRequest
	for _, fr := range r.requests {
		if fr.RecipientID == recipientID && fr.Status == domain.FriendRequestPending {
			out = append(out, *fr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memFriendRequestRepo) ListAcceptedBySender(senderID string) ([]domain.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FriendRequest
	for _, fr := range r.requests {
		if fr.SenderID == senderID && fr.Status == domain.FriendRequestAccepted {
			out = append(out, *fr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}
