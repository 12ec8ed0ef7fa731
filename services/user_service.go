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
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const resetCodeTTL = 15 * time.Minute

type UserService struct {
	db     *gorm.DB
	mailer utils.Mailer
	now    func() time.Time
}

func NewUserService(db *gorm.DB, mailer utils.Mailer) *UserService {
	return &UserService{db: db, mailer: mailer, now: time.Now}
}

func (s *UserService) GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("firebase_uid = ?", uid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "User not found")
	}
	return &user, err
}

func (s *UserService) UpdateEmail(ctx context.Context, userID uuid.UUID, currentPassword, newEmail string) (*models.User, error) {
	errs := validation.ValidateLoginEdit(validation.LoginEditInput{
		CurrentPassword: currentPassword,
		NewEmail:        newEmail,
		ConfirmEmail:    newEmail,
	})
	if !errs.OK() {
		return nil, errs
	}
	user, err := s.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(currentPassword, user.Password) {
		return nil, fail(ErrInvalidCredentials, "現在のパスワードが正しくありません")
	}
	if newEmail == user.Email {
		return user, nil
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ? AND id <> ?", newEmail, userID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fail(ErrConflict, "Email already in use")
	}
	user.Email = newEmail
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("update email: %w", err)
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if errs := validation.ValidatePassword(newPassword); !errs.OK() {
		return errs
	}
	user, err := s.get(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(currentPassword, user.Password) {
		return fail(ErrInvalidCredentials, "現在のパスワードが正しくありません")
	}
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.db.WithContext(ctx).Model(user).Update("password", hashed).Error
}

// ForgotPassword mails a reset code. Unknown addresses are not reported.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	code := utils.GenerateResetCode()
	err = s.db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"reset_token":     code,
		"reset_token_exp": s.now().Add(resetCodeTTL),
	}).Error
	if err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}
	if err := utils.SendResetEmail(ctx, s.mailer, user.Email, code); err != nil {
		zap.L().Error("failed to send reset email", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return fail(ErrBadRequest, "Invalid or expired token")
	}
	if errs := validation.ValidatePassword(newPassword); !errs.OK() {
		return errs
	}
	var user models.User
	err := s.db.WithContext(ctx).Where("reset_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(ErrBadRequest, "Invalid or expired token")
	}
	if err != nil {
		return fmt.Errorf("find reset token: %w", err)
	}
	if s.now().After(user.ResetTokenExp) {
		return fail(ErrBadRequest, "Invalid or expired token")
	}
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"password":        hashed,
		"reset_token":     "",
		"reset_token_exp": time.Time{},
	}).Error
}
