package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"bahay/internal/audit"
	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
	"bahay/pkg/platform/sentinel"
	"bahay/pkg/requestcontext"
)

// UserStore persists accounts. Email uniqueness is the store's concern.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, userID id.UserID) (*User, error)
}

// AuditPublisher mirrors account events to the audit trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service handles account creation and credential checks.
type Service struct {
	users    UserStore
	tokens   *JWTService
	auditPub AuditPublisher
	logger   *slog.Logger
}

type Option func(s *Service)

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditPub = p }
}

// New constructs a Service.
func New(users UserStore, tokens *JWTService, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{users: users, tokens: tokens, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp creates an owner account.
func (s *Service) SignUp(ctx context.Context, req *SignUpRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, dErrors.New(dErrors.CodeValidation, "password is too long")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	now := requestcontext.Now(ctx)
	user := &User{
		ID:           id.NewUserID(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         RoleOwner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "an account with this email already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create account")
	}

	s.emitAudit(ctx, audit.Event{
		ActorID: user.ID,
		Subject: user.Email,
		Action:  audit.ActionUserCreated,
	})
	s.logger.InfoContext(ctx, "account created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login checks credentials and issues an access token. Unknown email and wrong
// password return the same error so the endpoint does not leak which emails
// are registered.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	now := requestcontext.Now(ctx)
	token, err := s.tokens.GenerateAccessToken(user.ID, user.Role, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}

	s.emitAudit(ctx, audit.Event{
		ActorID: user.ID,
		Subject: user.Email,
		Action:  audit.ActionUserLogin,
		Device:  requestcontext.Device(ctx),
	})
	s.logger.InfoContext(ctx, "login succeeded", "user_id", user.ID, "role", user.Role)

	return &TokenResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		User:        user,
	}, nil
}

// Authenticate resolves a bearer token to the account it identifies. Used by
// the auth middleware.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*User, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	return user, nil
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPub == nil {
		return
	}
	if err := s.auditPub.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err, "action", event.Action)
	}
}
