package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/giladtamam/football-insights-sub001/internal/domain/user"
	"github.com/giladtamam/football-insights-sub001/internal/platform/auth"
	idgen "github.com/giladtamam/football-insights-sub001/internal/platform/id"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
)

// GoogleIdentity is a verified Google account identity.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier verifies a Google ID token and returns the identity it
// asserts. Implemented by infrastructure/account/google.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (GoogleIdentity, error)
}

// AuthPayload is returned by every authentication mutation: a bearer token
// plus the user profile it belongs to.
type AuthPayload struct {
	Token string
	User  user.User
}

const minPasswordLength = 8

// AuthService owns sign-up, login, Google sign-in, profile updates and
// password changes. Validation and credential failures surface as sentinel
// errors, never as structured results.
type AuthService struct {
	userRepo user.Repository
	tokens   *auth.TokenManager
	google   GoogleVerifier
	ids      idgen.Generator
	logger   *logging.Logger
}

func NewAuthService(
	userRepo user.Repository,
	tokens *auth.TokenManager,
	google GoogleVerifier,
	ids idgen.Generator,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		google:   google,
		ids:      ids,
		logger:   logger,
	}
}

func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (AuthPayload, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignUp")
	defer span.End()

	email, err := normalizeEmail(email)
	if err != nil {
		return AuthPayload{}, err
	}
	if len(password) < minPasswordLength {
		return AuthPayload{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return AuthPayload{}, fmt.Errorf("get user: %w", err)
	}
	if existing != nil {
		return AuthPayload{}, fmt.Errorf("%w: an account with this email already exists", ErrInvalidInput)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return AuthPayload{}, err
	}

	id, err := s.ids.NewID()
	if err != nil {
		return AuthPayload{}, fmt.Errorf("generate user id: %w", err)
	}

	now := time.Now().UTC()
	record := user.User{
		ID:           id,
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, record); err != nil {
		return AuthPayload{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", record.ID)
	return s.issuePayload(record)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthPayload, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	email, err := normalizeEmail(email)
	if err != nil {
		return AuthPayload{}, err
	}

	record, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return AuthPayload{}, fmt.Errorf("get user: %w", err)
	}
	if record == nil || record.PasswordHash == "" || !auth.CheckPassword(record.PasswordHash, password) {
		return AuthPayload{}, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	return s.issuePayload(*record)
}

// GoogleSignIn verifies the ID token and signs the account in, creating it
// on first sight. An existing email/password account is linked to the Google
// subject on its first Google sign-in.
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken string) (AuthPayload, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.GoogleSignIn")
	defer span.End()

	identity, err := s.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return AuthPayload{}, err
	}

	record, err := s.userRepo.GetByEmail(ctx, identity.Email)
	if err != nil {
		return AuthPayload{}, fmt.Errorf("get user: %w", err)
	}

	now := time.Now().UTC()
	if record == nil {
		id, err := s.ids.NewID()
		if err != nil {
			return AuthPayload{}, fmt.Errorf("generate user id: %w", err)
		}
		created := user.User{
			ID:        id,
			Email:     identity.Email,
			Name:      identity.Name,
			GoogleID:  identity.Subject,
			AvatarURL: identity.Picture,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.userRepo.Create(ctx, created); err != nil {
			return AuthPayload{}, fmt.Errorf("create user: %w", err)
		}
		s.logger.InfoContext(ctx, "user created via google sign-in", "user_id", created.ID)
		return s.issuePayload(created)
	}

	if record.GoogleID == "" {
		record.GoogleID = identity.Subject
		record.UpdatedAt = now
		if record.AvatarURL == "" {
			record.AvatarURL = identity.Picture
		}
		if err := s.userRepo.Update(ctx, *record); err != nil {
			return AuthPayload{}, fmt.Errorf("link google account: %w", err)
		}
	}

	return s.issuePayload(*record)
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.GetProfile")
	defer span.End()

	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if record == nil {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}
	return *record, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID, name, avatarURL string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.UpdateProfile")
	defer span.End()

	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if record == nil {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	if trimmed := strings.TrimSpace(name); trimmed != "" {
		record.Name = trimmed
	}
	if trimmed := strings.TrimSpace(avatarURL); trimmed != "" {
		record.AvatarURL = trimmed
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, *record); err != nil {
		return user.User{}, fmt.Errorf("update user: %w", err)
	}
	return *record, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ChangePassword")
	defer span.End()

	if len(next) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}
	if record.PasswordHash != "" && !auth.CheckPassword(record.PasswordHash, current) {
		return fmt.Errorf("%w: current password is incorrect", ErrUnauthorized)
	}

	hashed, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	record.PasswordHash = hashed
	record.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, *record); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed", "user_id", userID)
	return nil
}

// VerifyAccessToken satisfies the HTTP layer's token verifier: it decodes
// the bearer token locally, no account-service round trip.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	_, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyAccessToken")
	defer span.End()

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	return user.Principal{UserID: claims.UserID, Email: claims.Email}, nil
}

func (s *AuthService) issuePayload(record user.User) (AuthPayload, error) {
	token, err := s.tokens.Issue(record.ID, record.Email)
	if err != nil {
		return AuthPayload{}, err
	}
	record.PasswordHash = ""
	return AuthPayload{Token: token, User: record}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return "", fmt.Errorf("%w: email address is invalid", ErrInvalidInput)
	}
	return email, nil
}
