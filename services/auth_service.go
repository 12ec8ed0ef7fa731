package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"baseballnote/models"
	"baseballnote/utils"
	"baseballnote/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	tokens TokenStore
	secret string
	ttl    time.Duration
}

func NewAuthService(db *gorm.DB, tokens TokenStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{db: db, tokens: tokens, secret: secret, ttl: ttl}
}

type RegisterInput struct {
	FirebaseUID string       `json:"firebase_uid"`
	Email       string       `json:"email"`
	Password    string       `json:"password"`
	Role        *models.Role `json:"role"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	errs := validation.ValidateCreateAccount(validation.AccountInput{
		Email:       in.Email,
		Password1:   in.Password,
		Password2:   in.Password,
		AccountRole: in.Role,
	})
	if !errs.OK() {
		return nil, errs
	}

	db := s.db.WithContext(ctx)
	var n int64
	if err := db.Model(&models.User{}).Where("email = ?", in.Email).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fail(ErrConflict, "Email already registered")
	}
	if in.FirebaseUID == "" {
		in.FirebaseUID = utils.GenerateUID()
	} else {
		if err := db.Model(&models.User{}).Where("firebase_uid = ?", in.FirebaseUID).Count(&n).Error; err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, fail(ErrConflict, "Firebase Uid already registered")
		}
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		FirebaseUID: in.FirebaseUID,
		Email:       in.Email,
		Password:    hashed,
		Role:        *in.Role,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login checks credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if errs := validation.ValidateLogin(validation.LoginInput{Email: email, Password: password}); !errs.OK() {
		return "", nil, errs
	}
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fail(ErrInvalidCredentials, "メールアドレスまたはパスワードが正しくありません")
	}
	if err != nil {
		return "", nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, fail(ErrInvalidCredentials, "メールアドレスまたはパスワードが正しくありません")
	}
	token, _, err := utils.GenerateJWT(s.secret, &user, s.ttl)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, &user, nil
}

// Authenticate resolves a bearer token to its claims and the live account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*utils.Claims, *models.User, error) {
	claims, err := utils.ParseJWT(s.secret, token)
	if err != nil {
		return nil, nil, fail(ErrUnauthorized, "invalid token")
	}
	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, fail(ErrUnauthorized, "token revoked")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil, fail(ErrUnauthorized, "invalid claims")
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fail(ErrUnauthorized, "user not found")
		}
		return nil, nil, err
	}
	return claims, &user, nil
}

// Logout revokes the token id for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	return s.tokens.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}
