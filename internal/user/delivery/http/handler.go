package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/nutribakery/internal/user/domain"
	"github.com/tair/nutribakery/internal/user/usecase/command"
	"github.com/tair/nutribakery/internal/user/usecase/query"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/middleware"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	// Command handlers
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	forgotHandler   *command.ForgotPasswordHandler
	resetHandler    *command.ResetPasswordHandler
	promoteHandler  *command.PromoteUserHandler
	addressHandler  *command.UpdateAddressHandler
	updateHandler   *command.UpdateUserHandler

	// Query handlers
	getUserHandler *query.GetUserHandler
	existsHandler  *query.UserExistsHandler
	listHandler    *query.ListUsersHandler
	countHandler   *query.CountUsersHandler

	authLimiter *middleware.RateLimiter
}

// UserCommands groups the write side for NewUserHandlerWithDI
type UserCommands struct {
	Register *command.RegisterUserHandler
	Login    *command.LoginUserHandler
	Forgot   *command.ForgotPasswordHandler
	Reset    *command.ResetPasswordHandler
	Promote  *command.PromoteUserHandler
	Address  *command.UpdateAddressHandler
	Update   *command.UpdateUserHandler
}

// UserQueries groups the read side for NewUserHandlerWithDI
type UserQueries struct {
	Get    *query.GetUserHandler
	Exists *query.UserExistsHandler
	List   *query.ListUsersHandler
	Count  *query.CountUsersHandler
}

// NewUserHandlerWithDI creates a user handler from prebuilt handlers; authLimiter guards signup and login
func NewUserHandlerWithDI(cmds UserCommands, queries UserQueries, authLimiter *middleware.RateLimiter) *UserHandler {
	return &UserHandler{
		registerHandler: cmds.Register,
		loginHandler:    cmds.Login,
		forgotHandler:   cmds.Forgot,
		resetHandler:    cmds.Reset,
		promoteHandler:  cmds.Promote,
		addressHandler:  cmds.Address,
		updateHandler:   cmds.Update,
		getUserHandler:  queries.Get,
		existsHandler:   queries.Exists,
		listHandler:     queries.List,
		countHandler:    queries.Count,
		authLimiter:     authLimiter,
	}
}

func (h *UserHandler) RegisterRoutes(router *mux.Router, g middleware.Guard) {
	router.HandleFunc("/api/users/signup", g.Public("/api/users/signup", h.authLimiter.Limit(h.Register))).Methods("POST")
	router.HandleFunc("/api/users/login", g.Public("/api/users/login", h.authLimiter.Limit(h.Login))).Methods("POST")
	router.HandleFunc("/api/users/forgot-password", g.Public("/api/users/forgot-password", h.authLimiter.Limit(h.ForgotPassword))).Methods("POST")
	router.HandleFunc("/api/users/reset-password", g.Public("/api/users/reset-password", h.ResetPassword)).Methods("POST")
	router.HandleFunc("/api/users/promote", g.Admin("/api/users/promote", h.Promote)).Methods("POST")
	router.HandleFunc("/api/users/count", g.Public("/api/users/count", h.Count)).Methods("GET")
	router.HandleFunc("/api/users/me", g.User("/api/users/me", h.Me)).Methods("GET")
	router.HandleFunc("/api/users/updateAddress", g.User("/api/users/updateAddress", h.UpdateAddress)).Methods("PUT")
	router.HandleFunc("/api/users/{userID}", g.Admin("/api/users/{userID}", h.UpdateUser)).Methods("PUT")
	// ?user_id= is a public probe, the listing itself is admin only
	router.HandleFunc("/api/users", g.Optional("/api/users", h.ListUsers)).Methods("GET")
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

// Register handles POST /api/users/signup
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	user, err := h.registerHandler.Handle(r.Context(), command.RegisterUserCommand{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Error registering user")
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "User registered successfully", user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{Email: req.Email, Password: req.Password})
	if err != nil {
		httpx.RespondError(w, r, err, "Error logging in")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Login successful", resp)
}

// ForgotPassword handles POST /api/users/forgot-password
func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	if err := h.forgotHandler.Handle(r.Context(), req.Email); err != nil {
		httpx.RespondError(w, r, err, "Error processing request")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Password reset email sent", nil)
}

// ResetPassword handles POST /api/users/reset-password
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	err := h.resetHandler.Handle(r.Context(), command.ResetPasswordCommand{Token: req.Token, NewPassword: req.NewPassword})
	if err != nil {
		httpx.RespondError(w, r, err, "Error resetting password")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Password has been reset", nil)
}

// Promote handles POST /api/users/promote
func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	user, err := h.promoteHandler.Handle(r.Context(), command.PromoteUserCommand{Username: req.Username})
	if err != nil {
		httpx.RespondError(w, r, err, "Error promoting user")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "User "+user.Username+" has been promoted to admin.", user)
}

// Count handles GET /api/users/count
func (h *UserHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.countHandler.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err, "Error counting users")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", map[string]int64{"count": n})
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.IdentityFromContext(r.Context())
	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{UserID: id.UserID})
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching user")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", user)
}

// UpdateAddress handles PUT /api/users/updateAddress
func (h *UserHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address     string `json:"address"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	id, _ := httpx.IdentityFromContext(r.Context())
	user, err := h.addressHandler.Handle(r.Context(), command.UpdateAddressCommand{
		UserID:      id.UserID,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Error updating address")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Address updated successfully", user)
}

type updateUserRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Role        *string `json:"role"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
}

// UpdateUser handles PUT /api/users/{userID}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err, "Invalid request body")
		return
	}

	user, err := h.updateHandler.Handle(r.Context(), command.UpdateUserCommand{
		UserID:      mux.Vars(r)["userID"],
		Username:    req.Username,
		Email:       req.Email,
		Role:        req.Role,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		httpx.RespondError(w, r, err, "Error updating user")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "User updated successfully", user)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		exists, err := h.existsHandler.Handle(r.Context(), userID)
		if err != nil {
			httpx.RespondError(w, r, err, "Error checking user")
			return
		}
		httpx.RespondOK(w, http.StatusOK, "", map[string]bool{"exists": exists})
		return
	}

	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, r, apperr.Unauthorized("Authentication required"), "")
		return
	}
	if id.Role != domain.RoleAdmin {
		httpx.RespondError(w, r, apperr.Forbidden("Admin access required"), "")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	result, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{Page: page})
	if err != nil {
		httpx.RespondError(w, r, err, "Error fetching users")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", result)
}
