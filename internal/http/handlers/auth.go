package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cwaller/notehub/internal/auth"
	"github.com/cwaller/notehub/internal/config"
	"github.com/cwaller/notehub/internal/domain/user"
	"github.com/cwaller/notehub/internal/http/middlewares"
	"github.com/cwaller/notehub/internal/observability"
	"github.com/cwaller/notehub/internal/security"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, email, passwordHash string) (user.User, error)
}

// UserStore is what the router wires in; both repo implementations satisfy it.
type UserStore interface {
	UserReader
	UserWriter
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        *auth.Manager
	prom       *observability.Prom
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwtManager *auth.Manager, prom *observability.Prom) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwtManager,
		prom:       prom,
	}
}

// Register creates a new account and returns the public user view. The
// password hash never appears in any response; uniqueness of the email is
// settled by the store, so two racing registrations cannot both win.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u, err := h.userWriter.Create(cctx, req.Email, hash)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondBadRequest(ctx, "email_taken", "Email is already registered.", nil)
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// Token is the login endpoint. Unknown email and wrong password are
// answered identically so the response carries no signal about which
// addresses are registered.
func (h *AuthHandler) Token(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		h.trackLogin("rejected")
		RespondUnauthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		h.trackLogin("rejected")
		RespondUnauthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(foundUser.Email)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	h.trackLogin("ok")

	ctx.JSON(http.StatusOK, user.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// Me echoes the authenticated user's public view.
func (h *AuthHandler) Me(ctx *gin.Context) {
	subject, ok := middlewares.SubjectFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, subject)

	if err != nil {
		// the token outlived the account; without revocation this is the
		// closest honest answer
		RespondUnauthorized(ctx, "unauthorized", "Unknown identity")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *AuthHandler) trackLogin(result string) {
	if h.prom != nil {
		h.prom.AuthAttempts.WithLabelValues("login", result).Inc()
	}
}
