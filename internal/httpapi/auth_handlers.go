package httpapi

import (
	"net/http"

	"leadconsole/internal/domain"
	"leadconsole/internal/logging"
	"leadconsole/internal/session"
)

type AuthHandler struct {
	Session    *session.Manager
	CookieName string
	Log        *logging.Logger
}

type authResult struct {
	session.Info
	Redirect string `json:"redirect"`
}

func (h AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var in domain.SignUpInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.Session.SignUp(opCtx(r), in); err != nil {
		h.Log.AuthEvent("signup", in.Email, false, err.Error())
		WriteFailure(w, r, err)
		return
	}
	h.Log.AuthEvent("signup", in.Email, true, "")
	WriteJSON(w, http.StatusCreated, authResult{Redirect: session.SignInPage})
}

func (h AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var in domain.Credentials
	if !decodeBody(w, r, &in) {
		return
	}
	info, err := h.Session.SignIn(opCtx(r), in)
	if err != nil {
		h.Log.AuthEvent("signin", in.Email, false, err.Error())
		WriteFailure(w, r, err)
		return
	}
	h.Log.AuthEvent("signin", in.Email, true, "")
	h.setCookie(w, h.Session.Token())
	WriteJSON(w, http.StatusOK, authResult{Info: info, Redirect: session.HomePage})
}

func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(opCtx(r)); err != nil {
		WriteFailure(w, r, err)
		return
	}
	h.clearCookie(w)
	WriteJSON(w, http.StatusOK, authResult{Redirect: session.SignInPage})
}

// Info reports the current session. A session restored from the keychain
// is mirrored onto the console origin the first time the UI asks.
func (h AuthHandler) Info(w http.ResponseWriter, r *http.Request) {
	info := h.Session.Info(r.Context())
	if info.SignedIn {
		if ck, err := r.Cookie(h.CookieName); err != nil || ck.Value == "" {
			h.setCookie(w, h.Session.Token())
		}
	}
	WriteJSON(w, http.StatusOK, info)
}

func (h AuthHandler) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h AuthHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
