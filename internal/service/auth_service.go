package service

import (
	"context"
	"fmt"
	"time"

	"socialbid/internal/domain"
	"socialbid/internal/security"
)

// AuthService handles registration and login. Passwords are stored and
// compared in plaintext: this mirrors the demo's documented semantics and is
// not to be "fixed" quietly. They never leave this package, though; every
// user handed out is a PublicProfile.
type AuthService struct {
	users  domain.UserRepository
	tokens *security.TokenService
}

func NewAuthService(users domain.UserRepository, tokens *security.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	AvatarURL   string
}

type LoginInput struct {
	Username string
	Password string
}

type TokenResponse struct {
	AccessToken string                `json:"access_token"`
	TokenType   string                `json:"token_type"`
	User        *domain.PublicProfile `json:"user"`
}

// Login resolves a user by exact username and plaintext password match.
// Unknown user and wrong password both come back as ErrNotFound; the two
// cases are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil || user.Password != in.Password {
		return nil, domain.ErrNotFound
	}

	token, err := s.tokens.CreateForUser(user.Username)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.Public(),
	}, nil
}

// Register creates a new user with role forced to "user". A taken username
// or email fails with ErrDuplicateIdentity before anything is written.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*TokenResponse, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	if existing, err := s.users.GetByUsername(ctx, in.Username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if existing != nil {
		return nil, domain.ErrDuplicateIdentity
	}
	if existing, err := s.users.GetByEmail(ctx, in.Email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if existing != nil {
		return nil, domain.ErrDuplicateIdentity
	}

	user := &domain.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    in.Password,
		DisplayName: in.DisplayName,
		AvatarURL:   in.AvatarURL,
		Role:        domain.RoleUser,
		CreatedAt:   time.Now().UTC(),
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.CreateForUser(user.Username)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.Public(),
	}, nil
}
