package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"awguestbook/internal/domain"
)

const (
	minPasswordLen    = 6
	userNameMin       = 3
	resetTokenBytes   = 32
	resetTokenExpiry  = time.Hour
	sessionTokenBytes = 32

	// Every new user starts with one event so the guest form works
	// immediately after registration.
	defaultEventName = "My First Event"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo     domain.UserRepository
	eventRepo    domain.EventRepository
	sessionRepo  domain.SessionRepository
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	tokenExpiry  time.Duration
	sessionTTL   time.Duration
	emailService domain.EmailService
	baseURL      string
}

// NewAuthService creates an AuthService with the given repositories and
// auth ports.
func NewAuthService(
	userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	sessionRepo domain.SessionRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	sessionTTL time.Duration,
	emailService domain.EmailService,
	baseURL string,
) domain.AuthService {
	return &authService{
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		sessionRepo:  sessionRepo,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		tokenExpiry:  tokenExpiry,
		sessionTTL:   sessionTTL,
		emailService: emailService,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *authService) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	fields := map[string]string{}
	switch {
	case name == "":
		fields["name"] = "name is required"
	case len(name) < userNameMin:
		fields["name"] = fmt.Sprintf("name must be at least %d characters", userNameMin)
	}
	switch {
	case email == "":
		fields["email"] = "email is required"
	case !emailRegexp.MatchString(email):
		fields["email"] = "invalid email format"
	}
	switch {
	case input.Password == "":
		fields["password"] = "password is required"
	case len(input.Password) < minPasswordLen:
		fields["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLen)
	}
	switch {
	case input.ConfirmPassword == "":
		fields["confirmPassword"] = "password confirmation is required"
	case input.Password != input.ConfirmPassword:
		fields["confirmPassword"] = "passwords do not match"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(name, email, hash, domain.RoleAdmin, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, &domain.ValidationError{Fields: map[string]string{"email": "email already registered"}}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	event := domain.NewEvent(user.ID, defaultEventName, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create default event: %w", err)
	}

	return s.startSession(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" || !emailRegexp.MatchString(email) {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.startSession(ctx, user)
}

func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, sessionToken); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return &domain.ValidationError{Fields: map[string]string{"email": "invalid email format"}}
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same outcome as success so responses never reveal whether
			// an account exists.
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	token, err := generateToken(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expires := time.Now().Add(resetTokenExpiry)
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if s.emailService != nil {
		data := &domain.PasswordResetEmailData{
			Email:            user.Email,
			Name:             user.Name,
			ResetLink:        fmt.Sprintf("%s/reset-password.html?token=%s", s.baseURL, token),
			ExpiresInMinutes: int(resetTokenExpiry.Minutes()),
		}
		if err := s.emailService.SendPasswordReset(ctx, data); err != nil {
			return fmt.Errorf("send reset email: %w", err)
		}
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return domain.ErrInvalidResetToken
	}
	if len(password) < minPasswordLen {
		return &domain.ValidationError{Fields: map[string]string{
			"password": fmt.Sprintf("password must be at least %d characters", minPasswordLen),
		}}
	}
	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidResetToken
		}
		return fmt.Errorf("get user by reset token: %w", err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	// Clearing the token in the same statement makes it single-use.
	if err := s.userRepo.UpdatePasswordAndClearReset(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *authService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *authService) startSession(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	token, err := generateToken(sessionTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	now := time.Now()
	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	apiToken, err := s.tokenIssuer.Issue(user.ID, user.Email, user.Role, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue api token: %w", err)
	}
	return &domain.AuthResult{User: user, Session: session, APIToken: apiToken}, nil
}

func generateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
