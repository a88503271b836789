package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/sellmypostoffice/valuation-api/internal/infra/auth"
	"github.com/sellmypostoffice/valuation-api/internal/infra/http/middleware"
)

type AuthHandler struct {
	Tokens        *auth.TokenManager
	AdminUser     string
	AdminPassword string
}

func NewAuthHandler(tokens *auth.TokenManager, adminUser, adminPassword string) *AuthHandler {
	return &AuthHandler{
		Tokens:        tokens,
		AdminUser:     adminUser,
		AdminPassword: adminPassword,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin is POST /admin/login. On a credential mismatch the
// response never says which field was wrong.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.AdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.AdminPassword)) == 1
	if !userOK || !passOK {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.Tokens.Sign(auth.RoleAdmin, req.Username)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	http.SetCookie(w, h.Tokens.SessionCookie(token))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleMe is GET /admin/me, behind the admin middleware. Echoes the
// verified role and identity so the dashboard can confirm a session.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"role": claims.Role,
		"user": map[string]string{"email": claims.Subject},
	})
}

// HandleLogout is POST /admin/logout: drops the session cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.Tokens.ClearCookie())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
