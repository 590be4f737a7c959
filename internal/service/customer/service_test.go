package customer

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockorders/internal/domain"
	tokenrepo "stockorders/internal/repository/token"

	"golang.org/x/crypto/bcrypt"
)

type stubCustomerRepo struct {
	created   *domain.Customer
	createErr error
	byEmail   *domain.Customer
	byEmailE  error
	byID      *domain.Customer
	byIDErr   error
	lastArg   domain.Customer
}

func (s *stubCustomerRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	s.lastArg = c
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	out := c
	out.ID = "cust-1"
	out.Active = true
	return &out, nil
}

func (s *stubCustomerRepo) GetByEmail(_ context.Context, _ string) (*domain.Customer, error) {
	return s.byEmail, s.byEmailE
}

func (s *stubCustomerRepo) GetByID(_ context.Context, _ string) (*domain.Customer, error) {
	return s.byID, s.byIDErr
}

type stubAddressRepo struct {
	created   []domain.Address
	addresses []domain.Address
}

func (s *stubAddressRepo) ListActiveByCustomer(_ context.Context, _ string) ([]domain.Address, error) {
	return s.addresses, nil
}

func (s *stubAddressRepo) Create(_ context.Context, a domain.Address) (*domain.Address, error) {
	s.created = append(s.created, a)
	return &a, nil
}

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (m *memTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := m.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	m.tokens[t.Token] = t
	return nil
}

func (m *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memTokenRepo) Delete(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func TestSignupValidation(t *testing.T) {
	svc := New(&stubCustomerRepo{}, &stubAddressRepo{}, newMemTokenRepo())

	cases := []struct {
		name string
		in   SignupInput
	}{
		{"missing email", SignupInput{Name: "Ali", Password: "Sifre123"}},
		{"missing name", SignupInput{Email: "ali@mail.com", Password: "Sifre123"}},
		{"short password", SignupInput{Name: "Ali", Email: "ali@mail.com", Password: "Ab1"}},
		{"no digit", SignupInput{Name: "Ali", Email: "ali@mail.com", Password: "Parolasiz"}},
		{"no uppercase", SignupInput{Name: "Ali", Email: "ali@mail.com", Password: "sifre1234"}},
	}
	for _, tc := range cases {
		if _, err := svc.Signup(context.Background(), tc.in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestSignupCreatesCustomerAndAddresses(t *testing.T) {
	repo := &stubCustomerRepo{}
	addresses := &stubAddressRepo{}
	svc := New(repo, addresses, newMemTokenRepo())

	created, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Ali Veli",
		Email:    "  Ali@Mail.com ",
		Password: "Sifre123",
		Addresses: []AddressInput{
			{Type: "home", City: "İstanbul", Town: "Kadıköy", StreetLine: "Bağdat Cd. 12"},
			{Type: "work", City: "Ankara", Town: "Çankaya", StreetLine: "Atatürk Blv. 5"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Email != "ali@mail.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if repo.lastArg.PasswordHash == "" || repo.lastArg.PasswordHash == "Sifre123" {
		t.Fatalf("expected hashed password, got %q", repo.lastArg.PasswordHash)
	}
	if len(addresses.created) != 2 || addresses.created[0].CustomerID != "cust-1" {
		t.Fatalf("expected 2 addresses bound to customer, got %+v", addresses.created)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := New(&stubCustomerRepo{createErr: domain.ErrAlreadyExists}, &stubAddressRepo{}, newMemTokenRepo())

	_, err := svc.Signup(context.Background(), SignupInput{Name: "Ali", Email: "ali@mail.com", Password: "Sifre123"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestLoginIssuesTokens(t *testing.T) {
	repo := &stubCustomerRepo{byEmail: &domain.Customer{
		ID:           "cust-1",
		Name:         "Ali Veli",
		Email:        "ali@mail.com",
		PasswordHash: hash(t, "Sifre123"),
		Active:       true,
	}}
	tokens := newMemTokenRepo()
	svc := New(repo, &stubAddressRepo{}, tokens)

	c, access, refresh, err := svc.Login(context.Background(), "ali@mail.com", "Sifre123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "cust-1" || access == "" || refresh == "" || access == refresh {
		t.Fatalf("unexpected login result: %q %q", access, refresh)
	}
	if len(tokens.tokens) != 2 {
		t.Fatalf("expected 2 stored tokens, got %d", len(tokens.tokens))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &stubCustomerRepo{byEmail: &domain.Customer{
		ID:           "cust-1",
		PasswordHash: hash(t, "Sifre123"),
		Active:       true,
	}}
	svc := New(repo, &stubAddressRepo{}, newMemTokenRepo())

	_, _, _, err := svc.Login(context.Background(), "ali@mail.com", "yanlis")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := New(&stubCustomerRepo{byEmailE: domain.ErrNotFound}, &stubAddressRepo{}, newMemTokenRepo())

	_, _, _, err := svc.Login(context.Background(), "kimse@mail.com", "Sifre123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginInactiveCustomer(t *testing.T) {
	repo := &stubCustomerRepo{byEmail: &domain.Customer{
		ID:           "cust-1",
		PasswordHash: hash(t, "Sifre123"),
		Active:       false,
	}}
	svc := New(repo, &stubAddressRepo{}, newMemTokenRepo())

	_, _, _, err := svc.Login(context.Background(), "ali@mail.com", "Sifre123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLookupByToken(t *testing.T) {
	repo := &stubCustomerRepo{byID: &domain.Customer{ID: "cust-1", Active: true}}
	tokens := newMemTokenRepo()
	svc := New(repo, &stubAddressRepo{}, tokens)

	access, err := svc.tokens.Issue(context.Background(), "cust-1", "access", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, err := svc.LookupByToken(context.Background(), access)
	if err != nil || c.ID != "cust-1" {
		t.Fatalf("expected customer, got %v %v", c, err)
	}
}

func TestLookupByTokenRejectsRefreshToken(t *testing.T) {
	repo := &stubCustomerRepo{byID: &domain.Customer{ID: "cust-1", Active: true}}
	tokens := newMemTokenRepo()
	svc := New(repo, &stubAddressRepo{}, tokens)

	refresh, err := svc.tokens.Issue(context.Background(), "cust-1", "refresh", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.LookupByToken(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestLookupByTokenExpired(t *testing.T) {
	repo := &stubCustomerRepo{byID: &domain.Customer{ID: "cust-1", Active: true}}
	tokens := newMemTokenRepo()
	svc := New(repo, &stubAddressRepo{}, tokens)

	access, err := svc.tokens.Issue(context.Background(), "cust-1", "access", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.LookupByToken(context.Background(), access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if len(tokens.tokens) != 0 {
		t.Fatalf("expected expired token deleted, got %d left", len(tokens.tokens))
	}
}

func TestLookupByTokenInactiveCustomer(t *testing.T) {
	repo := &stubCustomerRepo{byID: &domain.Customer{ID: "cust-1", Active: false}}
	tokens := newMemTokenRepo()
	svc := New(repo, &stubAddressRepo{}, tokens)

	access, err := svc.tokens.Issue(context.Background(), "cust-1", "access", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.LookupByToken(context.Background(), access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
