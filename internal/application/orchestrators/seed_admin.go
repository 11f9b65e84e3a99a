package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"brightline/internal/domain/account"
)

// AccountStoreForSeed defines the store interface needed by SeedAdmin.
type AccountStoreForSeed interface {
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// SeedAdminInput carries the bootstrap credentials.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed
}

// ErrSeedCredentialsMissing is returned when an empty store needs a first
// admin but no credentials were configured.
var ErrSeedCredentialsMissing = errors.New("admin seed credentials not configured")

// ExecuteSeedAdmin creates the first admin account if none exist.
// POST: Store contains at least one account, or an error is returned
// INVARIANT: Existing accounts are never modified
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	n, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if input.Email == "" || input.Password == "" {
		return ErrSeedCredentialsMissing
	}

	acct := account.Account{
		Email:     input.Email,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("admin_seeded", "email", input.Email)
	return nil
}
