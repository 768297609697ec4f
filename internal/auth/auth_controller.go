package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/config"
	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/internal/validation"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
	"github.com/DhavalSuthar-24/skillswap/pkg/token"
	"github.com/DhavalSuthar-24/skillswap/pkg/utils"
	"github.com/DhavalSuthar-24/skillswap/pkg/validator"
)

type AuthController struct {
	repo   AuthRepository
	admins AdminChecker
	config *config.Config
	log    *logging.Logger
}

func NewAuthController(repo AuthRepository, admins AdminChecker, cfg *config.Config, log *logging.Logger) *AuthController {
	return &AuthController{
		repo:   repo,
		admins: admins,
		config: cfg,
		log:    log,
	}
}

func (ac *AuthController) generateAndSaveTokens(c *gin.Context, u *user.User) (string, string, error) {
	accessToken, err := token.GenerateJWT(u.ID, u.Email, u.FullName, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := token.GenerateRefreshToken(u.ID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}
	if err := ac.repo.SaveRefreshToken(c.Request.Context(), refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// setSessionCookie stores the access token in an HTTP-only cookie; maxAge < 0 clears it.
func (ac *AuthController) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.config.App.SessionCookie, value, maxAge, "/", "", ac.config.App.Env == "production", true)
}

func (ac *AuthController) startSession(c *gin.Context, status int, message string, u *user.User) {
	accessToken, refreshToken, err := ac.generateAndSaveTokens(c, u)
	if err != nil {
		ac.log.WithContext(c.Request.Context()).WithError(err).Error("session issue failed", "user_id", u.ID.String())
		responses.SendError(c, http.StatusInternalServerError, "Failed to start session", nil)
		return
	}
	ac.setSessionCookie(c, accessToken, ac.config.JWT.AccessTokenExpiryMinutes*60)

	isAdmin, err := ac.admins.IsAdmin(c.Request.Context(), u.ID)
	if err != nil {
		ac.log.WithContext(c.Request.Context()).WithError(err).Warn("admin lookup failed", "user_id", u.ID.String())
	}
	responses.SendSuccess(c, status, message, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(u, isAdmin),
	})
}

// SignUp godoc
// @Summary      Create an account
// @Description  Creates the member profile and starts a session.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  validation.SignUpInput  true  "Sign-up details"
// @Success      201   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      400   {object} responses.ErrorResponse "Validation failed"
// @Failure      409   {object} responses.ErrorResponse "Email already registered"
// @Router       /auth/signup [post]
func (ac *AuthController) SignUp(c *gin.Context) {
	var req validation.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}
	// max=72 counts characters; bcrypt's limit is in bytes.
	if len(req.Password) > utils.MaxPasswordBytes {
		responses.SendValidationError(c, map[string]string{
			"password": fmt.Sprintf("Password must be at most %d bytes", utils.MaxPasswordBytes),
		})
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := ac.repo.GetUserByEmail(ctx, email); !errors.Is(err, user.ErrNotFound) {
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to check email", nil)
			return
		}
		responses.SendError(c, http.StatusConflict, "An account with this email already exists", nil)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Error hashing password", nil)
		return
	}

	newUser := &user.User{
		Email:    email,
		Password: hashedPassword,
		FullName: strings.TrimSpace(req.FullName),
	}
	if err := ac.repo.CreateUser(ctx, newUser); err != nil {
		ac.log.WithContext(ctx).WithError(err).Error("create user failed")
		responses.SendError(c, http.StatusInternalServerError, "Account creation failed", nil)
		return
	}

	ac.log.WithContext(ctx).Info("member signed up", "user_id", newUser.ID.String())
	ac.startSession(c, http.StatusCreated, "Account created successfully", newUser)
}

// SignIn godoc
// @Summary      Sign in
// @Description  Checks credentials, returns tokens and sets the session cookie.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  validation.SignInInput  true  "Credentials"
// @Success      200   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      400   {object} responses.ErrorResponse "Validation failed"
// @Failure      401   {object} responses.ErrorResponse "Invalid credentials"
// @Router       /auth/signin [post]
func (ac *AuthController) SignIn(c *gin.Context) {
	var req validation.SignInInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	found, err := ac.repo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			responses.Unauthorized(c, "Invalid email or password")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to sign in", nil)
		return
	}
	if !utils.CheckPassword(found.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	ac.startSession(c, http.StatusOK, "Signed in successfully", found)
}

// RefreshToken godoc
// @Summary      Refresh the access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body  RefreshTokenRequest  true  "Refresh token"
// @Success      200   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      401   {object} responses.ErrorResponse "Invalid or expired refresh token"
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	ctx := c.Request.Context()
	if _, err := token.ValidateJWT(req.RefreshToken, ac.config.JWT.RefreshTokenSecret); err != nil {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}
	rt, err := ac.repo.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}
	u, err := ac.repo.GetUserByID(ctx, rt.UserID)
	if err != nil {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	newAccessToken, err := token.GenerateJWT(u.ID, u.Email, u.FullName, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "New access token generation failed", nil)
		return
	}
	ac.setSessionCookie(c, newAccessToken, ac.config.JWT.AccessTokenExpiryMinutes*60)

	isAdmin, _ := ac.admins.IsAdmin(ctx, u.ID)
	responses.SendSuccess(c, http.StatusOK, "Token refreshed successfully", AuthResponse{
		AccessToken: newAccessToken,
		User:        FilterUserRecord(u, isAdmin),
	})
}

// SignOut godoc
// @Summary      Sign out
// @Description  Revokes the member's refresh tokens and clears the session cookie.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse
// @Router       /auth/signout [post]
func (ac *AuthController) SignOut(c *gin.Context) {
	if identity, ok := middleware.CurrentIdentity(c); ok {
		if err := ac.repo.RevokeAllRefreshTokens(c.Request.Context(), identity.UserID); err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to sign out", nil)
			return
		}
	}
	ac.setSessionCookie(c, "", -1)
	responses.SendSuccess(c, http.StatusOK, "Signed out successfully", nil)
}

// Me godoc
// @Summary      Current member
// @Tags         Auth
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse{data=UserResponse}
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Router       /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	currentUser, err := ac.repo.GetUserByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve profile", nil)
		return
	}
	isAdmin, err := ac.admins.IsAdmin(ctx, currentUser.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check admin access", nil)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", FilterUserRecord(currentUser, isAdmin))
}

func (ac *AuthController) SignInPage(c *gin.Context) {
	authPage(c, "Sign in", "/auth/signin")
}

func (ac *AuthController) SignUpPage(c *gin.Context) {
	authPage(c, "Create an account", "/auth/signup")
}

// authPage serves a bare form shell; the frontend posts to the JSON endpoint.
func authPage(c *gin.Context, title, action string) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(`<!doctype html>
<html>
	<head><title>SkillSwap | %[1]s</title></head>
	<body data-action="%[2]s">
		<h1>%[1]s</h1>
	</body>
</html>
`, title, action)))
}

var _ AuthRepository = user.NewUserRepository(nil)
