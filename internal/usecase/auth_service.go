package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/account"
	idgen "github.com/riskibarqy/volley-club/internal/platform/id"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// AccessToken is a signed bearer token handed to clients.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenIssuer signs access tokens for a principal.
type TokenIssuer interface {
	Issue(ctx context.Context, principal account.Principal) (AccessToken, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type UpdateProfileInput struct {
	UserID          string
	Name            string
	Email           string
	Password        string
	CurrentPassword string
}

type EnsureAdminInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	Account account.Account
	Token   AccessToken
}

type AuthService struct {
	accountRepo account.Repository
	hasher      PasswordHasher
	tokens      TokenIssuer
	idGen       idgen.Generator
	now         func() time.Time
}

func NewAuthService(accountRepo account.Repository, hasher PasswordHasher, tokens TokenIssuer, idGen idgen.Generator) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		hasher:      hasher,
		tokens:      tokens,
		idGen:       idGen,
		now:         time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Email = account.NormalizeEmail(input.Email)
	if input.Name == "" {
		return AuthResult{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Email == "" {
		return AuthResult{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.Password == "" {
		return AuthResult{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	_, exists, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("get account by email: %w", err)
	}
	if exists {
		return AuthResult{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, input.Email)
	}

	item, err := s.newAccount(input.Name, input.Email, input.Password, account.RoleMember)
	if err != nil {
		return AuthResult{}, err
	}
	if err := s.accountRepo.Create(ctx, item); err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			return AuthResult{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, input.Email)
		}
		return AuthResult{}, fmt.Errorf("create account: %w", err)
	}

	token, err := s.issue(ctx, item)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Account: item, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	email := account.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return AuthResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	item, exists, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("get account by email: %w", err)
	}
	if !exists {
		return AuthResult{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if err := s.hasher.Compare(item.PasswordHash, input.Password); err != nil {
		return AuthResult{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	now := s.now().UTC()
	if err := s.accountRepo.TouchLastLogin(ctx, item.ID, now); err != nil {
		return AuthResult{}, fmt.Errorf("update last login: %w", err)
	}
	item.LastLoginAt = &now

	token, err := s.issue(ctx, item)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Account: item, Token: token}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.GetProfile")
	defer span.End()

	return s.getAccount(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.UpdateProfile")
	defer span.End()

	current, err := s.getAccount(ctx, input.UserID)
	if err != nil {
		return account.Account{}, err
	}

	name := strings.TrimSpace(input.Name)
	email := account.NormalizeEmail(input.Email)
	if name == "" {
		return account.Account{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if email == "" {
		return account.Account{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	if email != current.Email {
		_, taken, err := s.accountRepo.GetByEmail(ctx, email)
		if err != nil {
			return account.Account{}, fmt.Errorf("get account by email: %w", err)
		}
		if taken {
			return account.Account{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
		}
	}

	updated := current
	updated.Name = name
	updated.Email = email
	if input.Password != "" {
		if err := s.hasher.Compare(current.PasswordHash, input.CurrentPassword); err != nil {
			return account.Account{}, fmt.Errorf("%w: current password is incorrect", ErrUnauthorized)
		}
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return account.Account{}, fmt.Errorf("hash password: %w", err)
		}
		updated.PasswordHash = hash
	}

	if err := s.accountRepo.UpdateProfile(ctx, updated); err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			return account.Account{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
		}
		return account.Account{}, fmt.Errorf("update profile: %w", err)
	}

	return updated, nil
}

// AuthorizeRole reloads the account behind a principal and checks its stored role.
// The token's embedded role is ignored so demotions apply to tokens already issued.
func (s *AuthService) AuthorizeRole(ctx context.Context, principal account.Principal, role account.Role) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.AuthorizeRole")
	defer span.End()

	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return account.Account{}, fmt.Errorf("%w: principal has no subject", ErrUnauthorized)
	}

	item, exists, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return account.Account{}, fmt.Errorf("%w: load account for role check: %v", ErrDependencyUnavailable, err)
	}
	if !exists {
		return account.Account{}, fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
	}
	if item.Role != role {
		return account.Account{}, fmt.Errorf("%w: %s role required", ErrForbidden, role)
	}

	return item, nil
}

func (s *AuthService) ListAccounts(ctx context.Context) ([]account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ListAccounts")
	defer span.End()

	items, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return items, nil
}

func (s *AuthService) ChangeRole(ctx context.Context, actorID, targetID string, role account.Role) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ChangeRole")
	defer span.End()

	target, err := s.getAccount(ctx, targetID)
	if err != nil {
		return account.Account{}, err
	}
	if target.ID == strings.TrimSpace(actorID) && role != account.RoleAdmin {
		return account.Account{}, fmt.Errorf("%w: admins cannot demote themselves", ErrInvalidInput)
	}
	if target.Role == role {
		return target, nil
	}

	if err := s.accountRepo.UpdateRole(ctx, target.ID, role); err != nil {
		return account.Account{}, fmt.Errorf("update role: %w", err)
	}
	target.Role = role

	return target, nil
}

// EnsureAdmin creates the bootstrap admin account or promotes an existing one.
func (s *AuthService) EnsureAdmin(ctx context.Context, input EnsureAdminInput) (account.Account, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.EnsureAdmin")
	defer span.End()

	email := account.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return account.Account{}, false, fmt.Errorf("%w: admin email and password are required", ErrInvalidInput)
	}

	existing, exists, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return account.Account{}, false, fmt.Errorf("get admin by email: %w", err)
	}
	if exists {
		if existing.Role != account.RoleAdmin {
			if err := s.accountRepo.UpdateRole(ctx, existing.ID, account.RoleAdmin); err != nil {
				return account.Account{}, false, fmt.Errorf("promote admin: %w", err)
			}
			existing.Role = account.RoleAdmin
		}
		return existing, false, nil
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Administrator"
	}
	item, err := s.newAccount(name, email, input.Password, account.RoleAdmin)
	if err != nil {
		return account.Account{}, false, err
	}
	if err := s.accountRepo.Create(ctx, item); err != nil {
		return account.Account{}, false, fmt.Errorf("create admin: %w", err)
	}

	return item, true, nil
}

func (s *AuthService) getAccount(ctx context.Context, userID string) (account.Account, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return account.Account{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return account.Account{}, fmt.Errorf("get account: %w", err)
	}
	if !exists {
		return account.Account{}, fmt.Errorf("%w: account=%s", ErrNotFound, userID)
	}

	return item, nil
}

func (s *AuthService) newAccount(name, email, password string, role account.Role) (account.Account, error) {
	id, err := s.idGen.NewID()
	if err != nil {
		return account.Account{}, fmt.Errorf("generate account id: %w", err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return account.Account{}, fmt.Errorf("hash password: %w", err)
	}

	return account.Account{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}, nil
}

func (s *AuthService) issue(ctx context.Context, item account.Account) (AccessToken, error) {
	token, err := s.tokens.Issue(ctx, account.Principal{UserID: item.ID, Role: item.Role})
	if err != nil {
		return AccessToken{}, fmt.Errorf("issue access token: %w", err)
	}
	return token, nil
}
