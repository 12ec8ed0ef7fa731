package controllers

import (
	"net/http"

	"baseballnote/middlewares"
	"baseballnote/models"
	"baseballnote/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	Auth  *services.AuthService
	Users *services.UserService
}

func NewAuthController(auth *services.AuthService, users *services.UserService) *AuthController {
	return &AuthController{Auth: auth, Users: users}
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// IdentityResponse is what GET /auth/verify returns for a valid token.
type IdentityResponse struct {
	UID   string      `json:"uid"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// POST /auth/users
func (ac *AuthController) CreateUser(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	user, err := ac.Auth.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	zap.L().Info("user registered", zap.String("user_id", user.ID.String()), zap.Stringer("role", user.Role))
	c.JSON(http.StatusCreated, user)
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	token, user, err := ac.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: token, User: user})
}

// GET /auth/verify
func (ac *AuthController) Verify(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	c.JSON(http.StatusOK, IdentityResponse{UID: u.FirebaseUID, Email: u.Email, Role: u.Role})
}

// POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.Auth.Logout(c.Request.Context(), middlewares.CurrentClaims(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// canSee reports whether the caller may read another account's data.
func canSee(c *gin.Context, owner *models.User) bool {
	me := middlewares.CurrentUser(c)
	return me.ID == owner.ID || me.Role == models.RoleCoach
}

// GET /auth/users/firebase/:uid
func (ac *AuthController) GetUserByFirebaseUID(c *gin.Context) {
	user, err := ac.Users.GetByFirebaseUID(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !canSee(c, user) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "この操作を行う権限がありません"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /auth/users/firebase/:uid/role
func (ac *AuthController) GetRole(c *gin.Context) {
	user, err := ac.Users.GetByFirebaseUID(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": user.Role})
}

type updateEmailReq struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewEmail        string `json:"new_email" binding:"required,email"`
}

// PUT /auth/users/email
func (ac *AuthController) UpdateEmail(c *gin.Context) {
	var req updateEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	user, err := ac.Users.UpdateEmail(c.Request.Context(), middlewares.CurrentUserID(c), req.CurrentPassword, req.NewEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// PUT /auth/users/password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	if err := ac.Users.ChangePassword(c.Request.Context(), middlewares.CurrentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password has been changed"})
}

// POST /auth/password/forgot
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	if err := ac.Users.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent"})
}

// POST /auth/password/reset
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var input struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid input")
		return
	}
	if err := ac.Users.ResetPassword(c.Request.Context(), input.Token, input.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
