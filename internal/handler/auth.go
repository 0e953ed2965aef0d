package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/bucketlist/internal/apperror"
	"github.com/sakif/bucketlist/internal/auth"
	"github.com/sakif/bucketlist/internal/service"
)

// AuthHandler serves the registration, login, and logout flows.
type AuthHandler struct {
	auth     *service.AuthService
	renderer *Renderer
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected; the
// handler has no knowledge of how they're constructed.
func NewAuthHandler(authSvc *service.AuthService, renderer *Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, renderer: renderer, logger: logger}
}

type authPage struct {
	Title string
	Flash *Flash
}

// HandleRegisterForm serves the empty registration form.
//
// HTTP: GET /register
func (h *AuthHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "register.html", authPage{
		Title: "Register",
		Flash: popFlash(w, r),
	})
}

// HandleRegister creates a new account.
//
// HTTP: POST /register
//
// A username or email that is already taken — either one alone — is the only
// rejected case beyond empty fields. Both outcomes redirect back to the
// form; success redirects to login.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/register", "error", "Error! There was a problem registering.")
		return
	}

	_, err := h.auth.Register(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("password"),
		r.PostFormValue("email"),
	)
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrConflict):
			redirectWithFlash(w, r, "/register", "error", "Username or email already exists!")
		case errors.Is(err, apperror.ErrValidation):
			redirectWithFlash(w, r, "/register", "error", errorMessage(err))
		default:
			h.logger.Error("registration failed", slog.String("error", err.Error()))
			redirectWithFlash(w, r, "/register", "error", "Error! There was a problem registering.")
		}
		return
	}

	redirectWithFlash(w, r, "/login", "success", "Registered successfully! You can now log in.")
}

// HandleLoginForm serves the login form.
//
// HTTP: GET /login
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "login.html", authPage{
		Title: "Log in",
		Flash: popFlash(w, r),
	})
}

// HandleLogin verifies credentials and establishes the session.
//
// HTTP: POST /login
//
// Failure re-renders the form in place instead of redirecting — deliberately
// different from every other failure path, so the user stays on the form
// they just filled in. Success sets the session cookie and redirects to the
// item list.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "login.html", authPage{
			Title: "Log in",
			Flash: &Flash{Kind: "error", Message: "Invalid username or password!"},
		})
		return
	}

	token, err := h.auth.Login(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("password"),
	)
	if err != nil {
		if !errors.Is(err, apperror.ErrUnauthorized) {
			h.logger.Error("login failed", slog.String("error", err.Error()))
		}
		// Same generic notice for unknown username and wrong password
		h.renderer.Render(w, http.StatusOK, "login.html", authPage{
			Title: "Log in",
			Flash: &Flash{Kind: "error", Message: "Invalid username or password!"},
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable when serving over HTTPS
	})

	redirectWithFlash(w, r, "/", "success", "Logged in successfully!")
}

// HandleLogout revokes the session and clears the cookie.
//
// HTTP: POST /logout
//
// Safe to call when already logged out — revoking an unknown token is a
// no-op, and clearing an absent cookie is harmless.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			// The cookie is cleared regardless; the row will age out.
			h.logger.Error("logout failed", slog.String("error", err.Error()))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	redirectWithFlash(w, r, "/login", "success", "Logged out successfully!")
}

// errorMessage extracts the human-readable message from an AppError, with a
// generic fallback for anything unexpected.
func errorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong."
}
