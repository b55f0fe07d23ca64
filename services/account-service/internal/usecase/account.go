package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/account-api/shared/auth"
	"github.com/vasapolrittideah/account-api/shared/security"
)

// TokenTypeBearer is the token type reported to clients on login.
const TokenTypeBearer = "bearer"

// AccountUsecase defines the account related use cases.
type AccountUsecase interface {
	Signup(ctx context.Context, params SignupParams) (string, error)
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
	GetProfile(ctx context.Context, email string) (*Profile, error)
	GetDashboard(ctx context.Context, email string) (*Dashboard, error)
}

// SignupParams defines the parameters for user signup.
type SignupParams struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// LoginResult is returned on a successful login. User never carries the password hash.
type LoginResult struct {
	AccessToken string
	TokenType   string
	User        PublicUser
}

// PublicUser is the part of a user record that may be shown to its owner.
type PublicUser struct {
	Email     string
	FirstName *string
	LastName  *string
}

// Profile is the content of the profile page.
type Profile struct {
	FirstName *string
	LastName  *string
	Message   string
}

// Dashboard is the content of the dashboard page.
type Dashboard struct {
	Message        string
	RecentActivity []string
	Stats          DashboardStats
}

// DashboardStats summarises the account's login history.
type DashboardStats struct {
	TotalLogins int64
	LastLogin   time.Time
}

// WelcomeNotifier is told about new accounts.
type WelcomeNotifier interface {
	SendWelcome(ctx context.Context, user *model.User) error
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

var defaultRecentActivity = []string{"Login successful", "Profile viewed"}

type accountUsecase struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	hasher       security.PasswordHasher
	tokenIssuer  auth.TokenIssuer
	notifier     WelcomeNotifier
	logger       *zerolog.Logger
	now          func() time.Time
}

// Option customises an AccountUsecase.
type Option func(*accountUsecase)

// WithWelcomeNotifier sends a welcome message after each successful signup.
func WithWelcomeNotifier(n WelcomeNotifier) Option {
	return func(u *accountUsecase) { u.notifier = n }
}

// WithClock overrides the clock used for login activity.
func WithClock(now func() time.Time) Option {
	return func(u *accountUsecase) { u.now = now }
}

// NewAccountUsecase creates a new AccountUsecase.
func NewAccountUsecase(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	hasher security.PasswordHasher,
	tokenIssuer auth.TokenIssuer,
	logger *zerolog.Logger,
	opts ...Option,
) AccountUsecase {
	u := &accountUsecase{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}

	return u
}

// Signup registers a new account and returns its ID.
//
// The existence check and the insert are separate store calls. Two concurrent
// signups for the same email can both pass the check; stores that enforce a
// unique email report the loser as ErrUserAlreadyExists.
func (u *accountUsecase) Signup(ctx context.Context, params SignupParams) (string, error) {
	_, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err == nil {
		return "", ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return "", err
	}

	passwordHash, err := u.hasher.Hash(params.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        params.Email,
		PasswordHash: passwordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrUserAlreadyExists
		}

		return "", err
	}

	if u.notifier != nil {
		if err := u.notifier.SendWelcome(ctx, user); err != nil {
			u.logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to send welcome email")
		}
	}

	return user.ID.Hex(), nil
}

// Login verifies the credentials and issues an access token.
// An unknown email and a wrong password produce the same error.
func (u *accountUsecase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if !u.hasher.Verify(params.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := u.tokenIssuer.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	if err := u.activityRepo.RecordLogin(ctx, user.Email, u.now()); err != nil {
		u.logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to record login activity")
	}

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   TokenTypeBearer,
		User: PublicUser{
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}, nil
}

// GetProfile returns the profile of the account identified by email.
func (u *accountUsecase) GetProfile(ctx context.Context, email string) (*Profile, error) {
	user, err := u.getUser(ctx, email)
	if err != nil {
		return nil, err
	}

	return &Profile{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Message:   fmt.Sprintf("Welcome to your profile, %s!", user.DisplayName()),
	}, nil
}

// GetDashboard returns the dashboard of the account identified by email.
// Accounts without recorded activity report a single login happening now.
func (u *accountUsecase) GetDashboard(ctx context.Context, email string) (*Dashboard, error) {
	user, err := u.getUser(ctx, email)
	if err != nil {
		return nil, err
	}

	stats := DashboardStats{TotalLogins: 1, LastLogin: u.now().UTC()}

	activity, err := u.activityRepo.GetActivity(ctx, email)
	switch {
	case err == nil:
		stats = DashboardStats{TotalLogins: activity.TotalLogins, LastLogin: activity.LastLoginAt.UTC()}
	case errors.Is(err, repository.ErrActivityNotFound):
	default:
		u.logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to load login activity")
	}

	recent := make([]string, len(defaultRecentActivity))
	copy(recent, defaultRecentActivity)

	return &Dashboard{
		Message:        fmt.Sprintf("Welcome to your dashboard, %s!", user.DisplayName()),
		RecentActivity: recent,
		Stats:          stats,
	}, nil
}

func (u *accountUsecase) getUser(ctx context.Context, email string) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}
