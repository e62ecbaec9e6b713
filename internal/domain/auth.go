package domain

import "context"

// RegisterInput is the input for account registration.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthResult bundles everything produced by a successful login or
// registration: the user, the server-side session, and a bearer token for
// non-browser API clients.
type AuthResult struct {
	User     *User
	Session  *Session
	APIToken string
}

// AuthService defines registration, login, and password reset.
type AuthService interface {
	// Register creates the account plus one default event and logs the
	// user in.
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, sessionToken string) error
	// ForgotPassword stores a single-use reset token with a one hour
	// expiry and emails the reset link. It reports success whether or not
	// the email belongs to an account.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword consumes the token: on success the new password is
	// set and the token cleared.
	ResetPassword(ctx context.Context, token, password string) error
	GetUser(ctx context.Context, userID int64) (*User, error)
}
