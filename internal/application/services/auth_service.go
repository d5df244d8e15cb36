package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"listings-service/internal/application/command"
	"listings-service/internal/application/common"
	"listings-service/internal/application/interfaces"
	"listings-service/internal/application/mapper"
	"listings-service/internal/application/query"
	"listings-service/internal/domain/entities"
	"listings-service/internal/domain/repositories"
)

const (
	minPasswordLength   = 6
	verificationCodeTTL = 10 * time.Minute
	profileCacheTTL     = 5 * time.Minute
)

// Credentials hashes passwords and issues session tokens.
type Credentials interface {
	HashPassword(password string) (string, error)
	CheckPassword(password, hash string) bool
	IssueToken(userID, email string, role entities.UserRole) (string, error)
}

// VerificationMailer generates and delivers email-verification codes.
type VerificationMailer interface {
	GenerateCode() (string, error)
	CompareCodes(provided, expected string) bool
	SendCode(ctx context.Context, recipientEmail, code string) error
}

// VerificationCodeStore holds pending codes until they expire or are consumed.
type VerificationCodeStore interface {
	SetVerificationCode(ctx context.Context, email, code string, ttl time.Duration) error
	GetVerificationCode(ctx context.Context, email string) (string, error)
	DeleteVerificationCode(ctx context.Context, email string) error
}

// ProfileCache is the optional cache-aside store for profile lookups.
type ProfileCache interface {
	GetProfile(ctx context.Context, userID string) (*entities.User, error)
	SetProfile(ctx context.Context, user *entities.User, ttl time.Duration) error
	InvalidateProfile(ctx context.Context, userID string) error
}

// Limiter throttles per-key request rates.
type Limiter interface {
	Allow(key string) bool
}

type AuthService struct {
	userRepo     repositories.UserRepository
	credentials  Credentials
	mailer       VerificationMailer
	codes        VerificationCodeStore
	profileCache ProfileCache
	loginLimiter Limiter
	emailLimiter Limiter
	logger       zerolog.Logger
}

func NewAuthService(
	userRepo repositories.UserRepository,
	credentials Credentials,
	mailer VerificationMailer,
	codes VerificationCodeStore,
	profileCache ProfileCache,
	loginLimiter Limiter,
	emailLimiter Limiter,
	logger zerolog.Logger,
) interfaces.AuthService {
	return &AuthService{
		userRepo:     userRepo,
		credentials:  credentials,
		mailer:       mailer,
		codes:        codes,
		profileCache: profileCache,
		loginLimiter: loginLimiter,
		emailLimiter: emailLimiter,
		logger:       logger,
	}
}

func (s *AuthService) Register(ctx context.Context, cmd *command.RegisterUserCommand) (*command.RegisterUserCommandResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, common.NewValidationError("a valid email is required")
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, common.NewValidationError("password must be at least 6 characters")
	}

	role, err := entities.ParseUserRole(cmd.Role)
	if err != nil {
		return nil, common.NewValidationError(err.Error())
	}
	// Admin accounts are provisioned out of band, never via signup.
	if role == entities.RoleAdmin {
		return nil, common.NewValidationError("cannot register with this role")
	}

	hash, err := s.credentials.HashPassword(cmd.Password)
	if err != nil {
		return nil, common.NewInternalError("failed to hash password", err)
	}

	user := entities.NewUser(email, hash, role)
	user.FirstName = cmd.FirstName
	user.LastName = cmd.LastName
	user.PhoneNumber = cmd.PhoneNumber

	validated, err := entities.NewValidatedUser(user)
	if err != nil {
		return nil, common.NewValidationError(err.Error())
	}

	created, err := s.userRepo.Create(ctx, validated)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, common.NewConflictError("email is already registered")
		}
		return nil, common.NewInternalError("failed to create user", err)
	}
	if created == nil {
		return nil, common.NewInternalError("user write was not acknowledged", nil)
	}

	s.logger.Info().Str("userId", created.ID).Str("role", string(created.Role)).Msg("user registered")

	return &command.RegisterUserCommandResult{
		Result: mapper.NewUserResultFromEntity(created),
	}, nil
}

func (s *AuthService) Login(ctx context.Context, cmd *command.LoginUserCommand) (*command.LoginUserCommandResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if s.loginLimiter != nil && !s.loginLimiter.Allow(email) {
		return nil, common.NewRateLimitedError("too many login attempts, try again later")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, common.NewInternalError("failed to load user", err)
	}

	// Unknown email and wrong password produce the same response so the
	// endpoint cannot be used to probe for accounts.
	if user == nil || !s.credentials.CheckPassword(cmd.Password, user.PasswordHash) {
		return nil, common.NewInvalidCredentialsError()
	}
	if !user.IsActive {
		return nil, common.NewAccountInactiveError()
	}

	token, err := s.credentials.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, common.NewInternalError("failed to issue token", err)
	}

	s.logger.Info().Str("userId", user.ID).Msg("user logged in")

	return &command.LoginUserCommandResult{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

func (s *AuthService) SendVerification(ctx context.Context, cmd *command.SendVerificationCommand) (*command.SendVerificationCommandResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" {
		return nil, common.NewValidationError("email is required")
	}
	if s.emailLimiter != nil && !s.emailLimiter.Allow(email) {
		return nil, common.NewRateLimitedError("verification email was sent recently, try again later")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, common.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, common.NewNotFoundError("user not found")
	}
	if user.EmailVerified {
		return &command.SendVerificationCommandResult{Message: "email is already verified"}, nil
	}

	// Reuse a pending code when one exists so a resend does not invalidate
	// the email already in the user's inbox.
	code, err := s.codes.GetVerificationCode(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to read pending verification code")
		code = ""
	}
	if code == "" {
		code, err = s.mailer.GenerateCode()
		if err != nil {
			return nil, common.NewInternalError("failed to generate verification code", err)
		}
		if err := s.codes.SetVerificationCode(ctx, email, code, verificationCodeTTL); err != nil {
			return nil, common.NewInternalError("failed to store verification code", err)
		}
	}

	if err := s.mailer.SendCode(ctx, email, code); err != nil {
		return nil, common.NewInternalError("failed to send verification email", err)
	}

	return &command.SendVerificationCommandResult{Message: "verification code sent"}, nil
}

func (s *AuthService) ConfirmVerification(ctx context.Context, cmd *command.VerifyEmailCommand) (*command.VerifyEmailCommandResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Code == "" {
		return nil, common.NewValidationError("email and code are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, common.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, common.NewNotFoundError("user not found")
	}

	expected, err := s.codes.GetVerificationCode(ctx, email)
	if err != nil {
		return nil, common.NewInternalError("failed to read verification code", err)
	}
	if expected == "" || !s.mailer.CompareCodes(cmd.Code, expected) {
		return nil, common.NewValidationError("verification code is invalid or expired")
	}

	if _, err := s.userRepo.SetEmailVerified(ctx, user.ID); err != nil {
		return nil, common.NewInternalError("failed to mark email verified", err)
	}
	if err := s.codes.DeleteVerificationCode(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to drop consumed verification code")
	}
	s.invalidateProfile(ctx, user.ID)

	verified, err := s.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, common.NewInternalError("failed to load user", err)
	}
	if verified == nil {
		return nil, common.NewNotFoundError("user not found")
	}

	s.logger.Info().Str("userId", verified.ID).Msg("email verified")

	return &command.VerifyEmailCommandResult{
		Result: mapper.NewUserResultFromEntity(verified),
	}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*query.UserQueryResult, error) {
	if s.profileCache != nil {
		cached, err := s.profileCache.GetProfile(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("userId", userID).Msg("profile cache read failed")
		} else if cached != nil {
			return &query.UserQueryResult{Result: mapper.NewUserResultFromEntity(cached)}, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, common.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, common.NewNotFoundError("user not found")
	}

	if s.profileCache != nil {
		if err := s.profileCache.SetProfile(ctx, user, profileCacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("userId", userID).Msg("profile cache write failed")
		}
	}

	return &query.UserQueryResult{Result: mapper.NewUserResultFromEntity(user)}, nil
}

func (s *AuthService) invalidateProfile(ctx context.Context, userID string) {
	if s.profileCache == nil {
		return
	}
	if err := s.profileCache.InvalidateProfile(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("userId", userID).Msg("profile cache invalidation failed")
	}
}
