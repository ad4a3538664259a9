package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/salon-booking/internal/auth"
	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/events"
	"github.com/spec-kit/salon-booking/internal/repository"
	apperrors "github.com/spec-kit/salon-booking/pkg/util"
)

// ForgotPasswordMessage is returned for every reset request.
const ForgotPasswordMessage = "If an account with that email exists, password reset instructions have been sent."

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	logins     repository.LoginEventRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
	dummyHash  string
	clock      Clock
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	LoginEventRepo repository.LoginEventRepository
	TokenManager   *auth.TokenManager
	Dispatcher     events.Dispatcher
	BcryptCost     int
	Clock          Clock
	Logger         *zap.Logger
}

// AuthResult is a signed-in user and their access token.
type AuthResult struct {
	User  *domain.User
	Token domain.Token
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupInput is the registration payload.
type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email,tld_email"`
	Password string `json:"password" validate:"required,min=6"`
}

// NewAuthService builds the service. It hashes a throwaway password so that
// logins for unknown emails pay the same bcrypt cost as real ones.
func NewAuthService(deps AuthDependencies) (*AuthService, error) {
	dummy, err := auth.HashPassword("salon-booking-unknown-account", deps.BcryptCost)
	if err != nil {
		return nil, err
	}
	svc := &AuthService{
		users:      deps.UserRepo,
		logins:     deps.LoginEventRepo,
		tokenMgr:   deps.TokenManager,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
		dummyHash:  dummy,
		clock:      deps.Clock,
		logger:     deps.Logger,
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc, nil
}

// Login authenticates by email and password. Unknown emails and wrong passwords
// produce the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = strings.ToLower(trim(input.Email))
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		_ = auth.ComparePassword(s.dummyHash, input.Password)
		return nil, apperrors.NewInvalidCredentials()
	case err != nil:
		return nil, apperrors.NewStoreError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, input.Password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}

	now := s.clock()
	if err := s.logins.Create(ctx, &domain.LoginEvent{UserID: user.ID, Email: user.Email, LoggedInAt: now}); err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	publish(ctx, s.dispatcher, now, events.Event{
		Type:    events.EventUserLoggedIn,
		Actor:   actorOf(user),
		Payload: events.UserPayload{UserID: user.ID, Email: user.Email},
	})
	return s.issue(user)
}

// Signup registers a customer account.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	input.Name = trim(input.Name)
	input.Email = strings.ToLower(trim(input.Email))
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if len(input.Password) > auth.MaxPasswordBytes {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidPassword, "password must be at most 72 bytes",
			map[string]any{"fields": []string{"password"}})
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewEmailExists()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewStoreError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		CreatedAt:    s.clock(),
	}
	// the store's unique index decides concurrent signups for the same email
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewEmailExists()
		}
		return nil, apperrors.NewStoreError(err)
	}

	publish(ctx, s.dispatcher, user.CreatedAt, events.Event{
		Type:    events.EventUserRegistered,
		Actor:   actorOf(user),
		Payload: events.UserPayload{UserID: user.ID, Email: user.Email},
	})
	return s.issue(user)
}

// ForgotPassword acknowledges a reset request without revealing whether the account exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(trim(email))
	if email == "" {
		return "", apperrors.NewValidationError(apperrors.CodeMissingField, "email is required",
			map[string]any{"fields": []string{"email"}})
	}
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Debug("password reset requested", zap.String("email", email), zap.Bool("account", true))
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Debug("password reset requested", zap.String("email", email), zap.Bool("account", false))
	default:
		s.logger.Warn("password reset lookup failed", zap.Error(err))
	}
	return ForgotPasswordMessage, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	safe := *user
	safe.PasswordHash = ""
	return &AuthResult{User: &safe, Token: token}, nil
}
