package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"ecowaste/internal/domain"
	"ecowaste/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Service contains all business logic for authentication
type Service struct {
	accounts AccountRepositoryInterface
	jwt      jwtService
	loggerf  func(format string, args ...interface{})
}

type LoginResult struct {
	Account *domain.Account
	Token   string
}

func NewService(accounts AccountRepositoryInterface, jwt jwtService, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{accounts: accounts, jwt: jwt, loggerf: loggerf}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.Account, error) {
	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	kind := domain.AccountKind(req.Kind)
	if kind == "" {
		kind = domain.KindHome
	}

	account := &domain.Account{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
		Kind:         kind,
		Status:       domain.AccountActive,
		Phone:        req.Phone,
		Address:      req.Address,
		Location:     req.Location,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.loggerf("level=info msg=account registered account_id=%d kind=%s", account.ID, account.Kind)
	return account, nil
}

// Login checks credentials for a customer account.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	return s.login(ctx, req, false)
}

// AdminLogin is Login restricted to administrators.
func (s *Service) AdminLogin(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	return s.login(ctx, req, true)
}

func (s *Service) login(ctx context.Context, req LoginRequest, adminOnly bool) (*LoginResult, error) {
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		s.loggerf("level=warn msg=login failed account_id=%d admin=%t", account.ID, adminOnly)
		return nil, ErrInvalidCredentials
	}
	if adminOnly && !account.IsAdmin() {
		return nil, ErrNotAdmin
	}
	if !account.IsActive() {
		return nil, ErrAccountInactive
	}

	token, err := s.jwt.GenerateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, err
	}

	if err := s.accounts.TouchLastActive(ctx, account.ID, time.Now().UTC()); err != nil {
		s.loggerf("level=warn msg=last active update failed account_id=%d err=%v", account.ID, err)
	}

	return &LoginResult{Account: account, Token: token}, nil
}

func (s *Service) GetProfile(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *Service) UpdateProfile(ctx context.Context, accountID int64, req UpdateProfileRequest) (*domain.Account, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}

	account, err := s.accounts.Update(ctx, accountID, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// HashPassword is used by the seed command.
func HashPassword(password string) (string, error) {
	return (&Service{}).hashPassword(password)
}
