package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"brightline/internal/domain/account"
)

type mockAccountStore struct {
	accounts map[string]account.Account
	saveErr  error
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := m.accounts[email]
	if !ok {
		return account.Account{}, errors.New("not found")
	}
	return a, nil
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.accounts[a.Email] = a
	return nil
}

func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

func seedAccount(t *testing.T, store *mockAccountStore, email, password string) {
	t.Helper()
	a := account.Account{ID: 1, Email: email, CreatedAt: time.Now()}
	if err := a.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	store.accounts[email] = a
}

func TestExecuteLogin_Success(t *testing.T) {
	store := newMockAccountStore()
	seedAccount(t, store, "admin@brightline.example", "correct-horse-battery")

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@brightline.example",
		Password: "correct-horse-battery",
	}, LoginDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}
	if result.AccountID != 1 || result.Email != "admin@brightline.example" {
		t.Errorf("result = %+v", result)
	}
}

func TestExecuteLogin_WrongPassword(t *testing.T) {
	store := newMockAccountStore()
	seedAccount(t, store, "admin@brightline.example", "correct-horse-battery")

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@brightline.example",
		Password: "wrong-password-here",
	}, LoginDeps{AccountStore: store})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if store.accounts["admin@brightline.example"].FailedLogins != 1 {
		t.Errorf("FailedLogins = %d, want 1", store.accounts["admin@brightline.example"].FailedLogins)
	}
}

func TestExecuteLogin_UnknownEmail(t *testing.T) {
	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "nobody@brightline.example",
		Password: "whatever-password",
	}, LoginDeps{AccountStore: newMockAccountStore()})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestExecuteLogin_LockedAccount(t *testing.T) {
	store := newMockAccountStore()
	seedAccount(t, store, "admin@brightline.example", "correct-horse-battery")
	a := store.accounts["admin@brightline.example"]
	a.LockedUntil = time.Now().Add(10 * time.Minute)
	store.accounts["admin@brightline.example"] = a

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "admin@brightline.example",
		Password: "correct-horse-battery",
	}, LoginDeps{AccountStore: store})
	if !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("err = %v, want ErrAccountLocked", err)
	}
}

func TestExecuteLogin_EmptyInput(t *testing.T) {
	_, err := ExecuteLogin(context.Background(), LoginInput{}, LoginDeps{AccountStore: newMockAccountStore()})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
