package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
	"github.com/comprae/marketplace/internal/domain/repository"
	pkgAuth "github.com/comprae/marketplace/internal/pkg/auth"
)

// Registration holds sign-up input.
type Registration struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// AuthUseCase handles account creation and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a customer or seller account and returns an auth token.
// Administrators are never self-assigned.
func (u *AuthUseCase) Register(ctx context.Context, in Registration) (*model.User, string, error) {
	role := in.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return nil, "", domainErrors.Validation("unknown role %q", role)
	}
	if role == model.RoleAdmin {
		return nil, "", fmt.Errorf("%w: administrator accounts cannot be self-registered", domainErrors.ErrForbidden)
	}

	usr := model.User{Name: in.Name, Email: in.Email, Role: role}
	if err := NormalizeRegistration(&usr, in.Password); err != nil {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}
	usr.PasswordHash = hash

	created, err := u.users.Create(ctx, usr)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(model.Identity{UserID: created.ID, Role: created.Role})
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(model.Identity{UserID: usr.ID, Role: usr.Role})
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// ParseToken extracts the caller identity from a token.
func (u *AuthUseCase) ParseToken(token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
