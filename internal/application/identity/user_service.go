package identity

import (
	"context"
	"errors"

	"github.com/covu/backend/internal/domain/identity"
	"github.com/covu/backend/internal/domain/shared"
	"github.com/covu/backend/internal/domain/wallet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionScope provides transactional access to the user and wallet
// repositories. Registration creates both records in one transaction: a
// user without a wallet must not exist, even across a crash.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the registration
// repositories within a transaction
type TransactionalRepositories interface {
	UserRepo() identity.Repository
	WalletRepo() wallet.Repository
}

// UserService handles account registration and authentication
type UserService struct {
	scope    TransactionScope
	userRepo identity.Repository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(scope TransactionScope, userRepo identity.Repository, logger *zap.Logger) *UserService {
	return &UserService{
		scope:    scope,
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterRequest carries the sign-up input
type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	City        string
	State       string
}

// RegisterResult carries what was created
type RegisterResult struct {
	User   *identity.User
	Wallet *wallet.Wallet
}

// Register creates a user and their wallet atomically
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password, req.DisplayName, req.City, req.State)
	if err != nil {
		return nil, err
	}
	w, err := wallet.NewWallet(user.ID)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return err
		}
		return repos.WalletRepo().Save(ctx, w)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("wallet_id", w.ID.String()),
	)

	return &RegisterResult{User: user, Wallet: w}, nil
}

// Authenticate verifies credentials and returns the user
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*identity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	if !user.VerifyPassword(password) {
		return nil, shared.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, shared.ErrUnauthorized
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("Failed to record login time", zap.Error(err))
	}

	return user, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return s.userRepo.FindByID(ctx, id)
}
