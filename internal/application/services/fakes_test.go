package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"listings-service/internal/domain/entities"
	"listings-service/internal/domain/repositories"
	"listings-service/internal/messaging"
)

// memPropertyRepo mirrors the document-store contract in memory: (nil, nil)
// for absent ids, conjunction filters, 1-based pagination.
type memPropertyRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[string]*entities.Property
	order  []string
}

func newMemPropertyRepo() *memPropertyRepo {
	return &memPropertyRepo{items: make(map[string]*entities.Property)}
}

func (r *memPropertyRepo) Create(_ context.Context, property *entities.ValidatedProperty) (*entities.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := clone(property.GetProperty())
	stored.ID = fmt.Sprintf("prop-%d", r.nextID)
	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return clone(stored), nil
}

func (r *memPropertyRepo) FindByID(_ context.Context, id string) (*entities.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return clone(stored), nil
}

func (r *memPropertyRepo) FindByOwnerID(_ context.Context, ownerID string) ([]*entities.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]*entities.Property, 0)
	for _, id := range r.order {
		if p := r.items[id]; p != nil && p.PropertyOwnerID == ownerID {
			results = append(results, clone(p))
		}
	}
	return results, nil
}

func (r *memPropertyRepo) FindByIDs(_ context.Context, ids []string) ([]*entities.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]*entities.Property, 0)
	for _, id := range ids {
		if p, ok := r.items[id]; ok {
			results = append(results, clone(p))
		}
	}
	return results, nil
}

func (r *memPropertyRepo) FindAll(_ context.Context, filter *repositories.PropertyFilter, page, pageSize int) ([]*entities.Property, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*entities.Property, 0)
	for _, id := range r.order {
		if p := r.items[id]; p != nil && matchesFilter(p, filter) {
			matched = append(matched, clone(p))
		}
	}
	return paginate(matched, page, pageSize)
}

func (r *memPropertyRepo) Update(_ context.Context, id string, changes *repositories.PropertyChanges) (*entities.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	if changes == nil || changes.Empty() {
		return clone(stored), nil
	}

	for _, change := range changes.Fields() {
		applyChange(stored, change)
	}
	stored.UpdatedAt = time.Now().UTC()
	return clone(stored), nil
}

func (r *memPropertyRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *memPropertyRepo) SetAvailability(_ context.Context, id string, available bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok {
		return false, nil
	}
	if stored.IsAvailable == available {
		return false, nil
	}
	stored.IsAvailable = available
	stored.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *memPropertyRepo) Search(_ context.Context, query string, page, pageSize int) ([]*entities.Property, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	needle := strings.ToLower(query)
	matched := make([]*entities.Property, 0)
	for _, id := range r.order {
		p := r.items[id]
		if p == nil {
			continue
		}
		haystacks := []string{p.Name, p.Location, p.Type}
		if p.Description != nil {
			haystacks = append(haystacks, *p.Description)
		}
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), needle) {
				matched = append(matched, clone(p))
				break
			}
		}
	}
	return paginate(matched, page, pageSize)
}

func matchesFilter(p *entities.Property, f *repositories.PropertyFilter) bool {
	if f == nil {
		return true
	}
	if f.Type != nil && p.Type != *f.Type {
		return false
	}
	if f.ListingType != nil && p.ListingType != *f.ListingType {
		return false
	}
	if f.Location != nil && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(*f.Location)) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinSize != nil && (p.SizeInSquareMeters == nil || *p.SizeInSquareMeters < *f.MinSize) {
		return false
	}
	if f.MaxSize != nil && (p.SizeInSquareMeters == nil || *p.SizeInSquareMeters > *f.MaxSize) {
		return false
	}
	if f.IsAvailable != nil && p.IsAvailable != *f.IsAvailable {
		return false
	}
	if f.PropertyOwnerID != nil && p.PropertyOwnerID != *f.PropertyOwnerID {
		return false
	}
	for _, amenity := range f.Amenities {
		found := false
		for _, have := range p.Amenities {
			if have == amenity {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func paginate(matched []*entities.Property, page, pageSize int) ([]*entities.Property, int64, error) {
	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []*entities.Property{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func applyChange(p *entities.Property, change repositories.FieldChange) {
	switch change.Field {
	case "name":
		p.Name = change.Value.(string)
	case "type":
		p.Type = change.Value.(string)
	case "listingType":
		p.ListingType = entities.ListingType(change.Value.(string))
	case "description":
		v := change.Value.(string)
		p.Description = &v
	case "price":
		p.Price = change.Value.(float64)
	case "location":
		p.Location = change.Value.(string)
	case "isAvailable":
		p.IsAvailable = change.Value.(bool)
	case "sizeInSquareMeters":
		v := change.Value.(float64)
		p.SizeInSquareMeters = &v
	case "images":
		p.Images = change.Value.([]string)
	case "amenities":
		p.Amenities = change.Value.([]string)
	case "leaseTerms":
		v := change.Value.(string)
		p.LeaseTerms = &v
	case "saleTerms":
		v := change.Value.(string)
		p.SaleTerms = &v
	case "rating":
		v := change.Value.(float32)
		p.Rating = &v
	}
}

func clone(p *entities.Property) *entities.Property {
	cp := *p
	cp.Images = append([]string(nil), p.Images...)
	cp.Amenities = append([]string(nil), p.Amenities...)
	return &cp
}

// memUserRepo is the in-memory counterpart of the user store.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[string]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{items: make(map[string]*entities.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == user.GetUser().Email {
			return nil, repositories.ErrDuplicateEmail
		}
	}

	r.nextID++
	stored := cloneUser(user.GetUser())
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.items[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Email == strings.ToLower(email) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) AddFavorite(_ context.Context, userID, propertyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[userID]
	if !ok {
		return false, nil
	}
	for _, id := range u.FavoritePropertyIDs {
		if id == propertyID {
			return false, nil
		}
	}
	u.FavoritePropertyIDs = append(u.FavoritePropertyIDs, propertyID)
	return true, nil
}

func (r *memUserRepo) RemoveFavorite(_ context.Context, userID, propertyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[userID]
	if !ok {
		return false, nil
	}
	for i, id := range u.FavoritePropertyIDs {
		if id == propertyID {
			u.FavoritePropertyIDs = append(u.FavoritePropertyIDs[:i], u.FavoritePropertyIDs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) GetFavoriteIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[userID]
	if !ok {
		return []string{}, nil
	}
	return append([]string(nil), u.FavoritePropertyIDs...), nil
}

func (r *memUserRepo) SetEmailVerified(_ context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[userID]
	if !ok {
		return false, nil
	}
	if u.EmailVerified {
		return false, nil
	}
	u.EmailVerified = true
	u.UpdatedAt = time.Now().UTC()
	return true, nil
}

func cloneUser(u *entities.User) *entities.User {
	cu := *u
	cu.FavoritePropertyIDs = append([]string(nil), u.FavoritePropertyIDs...)
	return &cu
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events map[string][]*messaging.PropertyEvent
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: make(map[string][]*messaging.PropertyEvent)}
}

func (p *recordingPublisher) PublishPropertyEvent(subject string, event *messaging.PropertyEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[subject] = append(p.events[subject], event)
	return nil
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	subjects := make([]string, 0, len(p.events))
	for subject := range p.events {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}

// stubCredentials avoids bcrypt cost in service tests; the real hashing path
// is covered by the credential service tests.
type stubCredentials struct{}

func (stubCredentials) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubCredentials) CheckPassword(password, hash string) bool {
	return hash == "hashed:"+password
}

func (stubCredentials) IssueToken(userID, email string, role entities.UserRole) (string, error) {
	return fmt.Sprintf("token:%s:%s:%s", userID, email, role), nil
}

// memCodeStore keeps verification codes in memory; TTLs are not enforced.
type memCodeStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMemCodeStore() *memCodeStore {
	return &memCodeStore{codes: make(map[string]string)}
}

func (s *memCodeStore) SetVerificationCode(_ context.Context, email, code string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = code
	return nil
}

func (s *memCodeStore) GetVerificationCode(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[email], nil
}

func (s *memCodeStore) DeleteVerificationCode(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

// stubMailer records deliveries instead of calling out.
type stubMailer struct {
	mu       sync.Mutex
	sent     []string
	lastCode string
	sendErr  error
}

func (m *stubMailer) GenerateCode() (string, error) {
	return "123456", nil
}

func (m *stubMailer) CompareCodes(provided, expected string) bool {
	return provided == expected
}

func (m *stubMailer) SendCode(_ context.Context, recipientEmail, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, recipientEmail)
	m.lastCode = code
	return nil
}

// allowAllLimiter never throttles.
type allowAllLimiter struct{}

func (allowAllLimiter) Allow(string) bool { return true }

// denyLimiter always throttles.
type denyLimiter struct{}

func (denyLimiter) Allow(string) bool { return false }
