package service

import (
	"context"
	"errors"
	"time"

	"parfumpos/internal/dto"
	"parfumpos/internal/middleware"
	"parfumpos/internal/model"
	"parfumpos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
)

// AuthService handles login, token refresh, and account management.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)

	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	users         repository.UserRepository
	secret        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, accessHours, refreshHours int) AuthService {
	return &authService{
		users:         users,
		secret:        secret,
		accessExpiry:  time.Duration(accessHours) * time.Hour,
		refreshExpiry: time.Duration(refreshHours) * time.Hour,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The user is
// re-read so deactivation and role changes take effect immediately.
func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired refresh token")
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errors.New("invalid or expired refresh token")
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil || !user.Active {
		return nil, errors.New("account is no longer active")
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *model.User) (*dto.LoginResponse, error) {
	var outletID *string
	if user.OutletID != nil {
		v := user.OutletID.String()
		outletID = &v
	}

	now := time.Now()
	sign := func(expiry time.Duration) (string, error) {
		claims := middleware.JWTClaims{
			UserID:   user.ID.String(),
			Username: user.Username,
			Role:     user.Role,
			OutletID: outletID,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			},
		}
		return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	}

	access, err := sign(s.accessExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := sign(s.refreshExpiry)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessExpiry.Seconds()),
		User:         userToResponse(user),
	}, nil
}

func (s *authService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if req.OutletID != nil {
		oid, err := uuid.Parse(*req.OutletID)
		if err != nil {
			return nil, errors.New("invalid outlet_id")
		}
		user.OutletID = &oid
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	resp := userToResponse(&user)
	return &resp, nil
}

func (s *authService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.OutletID != nil {
		oid, err := uuid.Parse(*req.OutletID)
		if err != nil {
			return nil, errors.New("invalid outlet_id")
		}
		user.OutletID = &oid
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userToResponse(&users[i]))
	}
	return out, nil
}

func (s *authService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return errors.New("user not found")
	}
	return s.users.Deactivate(ctx, id)
}

func userToResponse(u *model.User) dto.UserResponse {
	var outletID *string
	if u.OutletID != nil {
		v := u.OutletID.String()
		outletID = &v
	}
	return dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		OutletID: outletID,
		Active:   u.Active,
	}
}
