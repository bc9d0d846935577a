package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/auth"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/user"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/database"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/jwt"
	"github.com/shifttracker/shifttracker-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db       *database.DB
	userRepo user.UserRepository
	orgRepo  user.OrganizationRepository
	jwt      jwt.Service
}

func NewAuthService(db *database.DB, userRepo user.UserRepository, orgRepo user.OrganizationRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:       db,
		userRepo: userRepo,
		orgRepo:  orgRepo,
		jwt:      jwtService,
	}
}

// Register implements auth.AuthService. Creates the organization and its
// first admin user atomically; a half-registered tenant must never exist.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	if _, err := a.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return auth.LoginResponse{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.LoginResponse{}, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created user.User
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		org, err := a.orgRepo.Create(txCtx, user.Organization{
			Name:     req.OrganizationName,
			Timezone: "UTC",
		})
		if err != nil {
			return err
		}

		created, err = a.userRepo.Create(txCtx, user.User{
			OrganizationID: org.ID,
			Email:          req.Email,
			PasswordHash:   string(hash),
			Role:           user.RoleAdmin,
			IsActive:       true,
		})
		return err
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return a.buildLoginResponse(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.IsActive {
		return auth.LoginResponse{}, user.ErrInactiveUser
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return a.buildLoginResponse(userData)
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if a.jwt.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := a.verifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrInactiveUser
	}

	accessToken, expiresAt, err := a.jwt.GenerateAccessToken(
		userData.ID, userData.Email, userData.EmployeeID, userData.OrganizationID, userData.Role,
	)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	if _, err := a.verifyRefreshToken(ctx, refreshToken); err != nil {
		return err
	}

	a.jwt.RevokeToken(refreshToken)
	return nil
}

func (a *AuthServiceImpl) verifyRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	token, err := a.jwt.JWTAuth().Decode(refreshToken)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return "", auth.ErrTokenExpired
		}
		return "", auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}

	return userID, nil
}

func (a *AuthServiceImpl) buildLoginResponse(userData user.User) (auth.LoginResponse, error) {
	accessToken, accessExpiresAt, err := a.jwt.GenerateAccessToken(
		userData.ID, userData.Email, userData.EmployeeID, userData.OrganizationID, userData.Role,
	)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.jwt.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return auth.LoginResponse{
		UserID:         userData.ID,
		OrganizationID: userData.OrganizationID,
		EmployeeID:     userData.EmployeeID,
		Email:          userData.Email,
		Role:           string(userData.Role),
		Token: auth.TokenResponse{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			ExpiresAt:        accessExpiresAt,
			RefreshExpiresAt: refreshExpiresAt,
			TokenType:        "Bearer",
		},
	}, nil
}
