package mockapi

import (
	"errors"
	"sort"
	"sync"
	"time"

	v1 "rewearadmin/pkg/api/v1"

	"github.com/google/uuid"
)

var (
	ErrSignupNotFound = errors.New("signup request not found")
	ErrSignupDecided  = errors.New("signup request already decided")
	ErrBadRole        = errors.New("unknown requested role")
)

// SignupStore keeps pending admin signup requests in memory. The mock server
// is a development fixture; nothing here needs to survive a restart.
type SignupStore struct {
	mu       sync.Mutex
	requests map[string]v1.SignupRecord
	// password per pending request, promoted into an account on approval
	passwords map[string]string
	accounts  *AccountStore
}

func NewSignupStore(accounts *AccountStore) *SignupStore {
	return &SignupStore{
		requests:  make(map[string]v1.SignupRecord),
		passwords: make(map[string]string),
		accounts:  accounts,
	}
}

func (s *SignupStore) Create(req v1.SignupRequest) (v1.SignupRecord, error) {
	if _, ok := v1.ParseRole(req.RequestedRole); !ok {
		return v1.SignupRecord{}, ErrBadRole
	}

	rec := v1.SignupRecord{
		ID:            uuid.New().String(),
		Email:         req.Email,
		Name:          req.Name,
		RequestedRole: req.RequestedRole,
		Reason:        req.Reason,
		Status:        v1.SignupPending,
		CreatedAt:     time.Now(),
	}

	s.mu.Lock()
	s.requests[rec.ID] = rec
	s.passwords[rec.ID] = req.Password
	s.mu.Unlock()

	return rec, nil
}

func (s *SignupStore) List() []v1.SignupRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]v1.SignupRecord, 0, len(s.requests))
	for _, rec := range s.requests {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Approve marks the request approved and activates the account with its
// requested role.
func (s *SignupStore) Approve(id string) (v1.SignupRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.requests[id]
	if !ok {
		return v1.SignupRecord{}, ErrSignupNotFound
	}
	if rec.Status != v1.SignupPending {
		return v1.SignupRecord{}, ErrSignupDecided
	}

	rec.Status = v1.SignupApproved
	s.requests[id] = rec

	role, _ := v1.ParseRole(rec.RequestedRole)
	s.accounts.Add(Account{
		Email:    rec.Email,
		Password: s.passwords[id],
		Name:     rec.Name,
		Role:     role,
	})
	delete(s.passwords, id)

	return rec, nil
}

func (s *SignupStore) Reject(id string) (v1.SignupRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.requests[id]
	if !ok {
		return v1.SignupRecord{}, ErrSignupNotFound
	}
	if rec.Status != v1.SignupPending {
		return v1.SignupRecord{}, ErrSignupDecided
	}

	rec.Status = v1.SignupRejected
	s.requests[id] = rec
	delete(s.passwords, id)

	return rec, nil
}
