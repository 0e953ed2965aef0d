package handler

import (
	"net/http"
	"net/url"
	"strings"
)

// Flash is a one-shot notice shown on the next rendered page, carried in a
// short-lived cookie.
//
// WHY A COOKIE AND NOT THE SESSION ROW?
// Flash notices follow the POST-redirect-GET pattern: the write handler sets
// the notice, redirects, and the next GET displays and discards it. A cookie
// does that in one round trip with no storage write, and it works on pages
// that have no session at all (the login and register forms need flashes
// too).
type Flash struct {
	Kind    string // "success" or "error" — picks the banner style
	Message string
}

const flashCookie = "flash"

// setFlash arranges for a notice to be displayed on the next page load.
func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending notice, if any, and clears the cookie so it
// shows exactly once.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}

	kind, message, ok := strings.Cut(value, "|")
	if !ok || message == "" {
		return nil
	}
	return &Flash{Kind: kind, Message: message}
}

// redirectWithFlash is the common tail of every write handler: set the
// notice, then send the browser on with 303 See Other so the redirect target
// is always fetched with GET.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, kind, message string) {
	setFlash(w, kind, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
