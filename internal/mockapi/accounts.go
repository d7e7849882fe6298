package mockapi

import (
	"sync"

	v1 "rewearadmin/pkg/api/v1"
)

// Account is a seeded admin credential the mock backend accepts. Passwords
// are plaintext on purpose; this server only ever backs development and
// tests.
type Account struct {
	Email    string
	Password string
	Name     string
	Role     v1.Role
}

type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

func NewAccountStore(seed []Account) *AccountStore {
	s := &AccountStore{accounts: make(map[string]Account)}
	for _, a := range seed {
		s.accounts[a.Email] = a
	}
	return s
}

// DefaultAccounts covers one admin per role for local development.
func DefaultAccounts() []Account {
	return []Account{
		{Email: "super@rewear.kr", Password: "super1234!", Name: "최고관리자", Role: v1.RoleSuperAdmin},
		{Email: "admin@rewear.kr", Password: "admin1234!", Name: "관리자", Role: v1.RoleAdmin},
		{Email: "manager@rewear.kr", Password: "manager1234!", Name: "매니저", Role: v1.RoleManager},
	}
}

func (s *AccountStore) Authenticate(email, password string) (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[email]
	if !ok || a.Password != password {
		return Account{}, false
	}
	return a, true
}

func (s *AccountStore) Add(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.Email] = a
}

func (s *AccountStore) Exists(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[email]
	return ok
}
