package service

import "net/http"

// Development-only credential table. Real identity is handled upstream of
// this service; these accounts exist so the dashboard login flow works
// against a local backend.
type stubUser struct {
	Password string
	Name     string
	Role     string
	Company  string
}

var stubUsers = map[string]stubUser{
	"tsakani@greenbdgafrica.com": {
		Password: "ChangeMe123!",
		Name:     "Tsakani",
		Role:     "admin",
		Company:  "GreenBDG Africa",
	},
	"test@example.com": {
		Password: "test123",
		Name:     "Test User",
		Role:     "user",
		Company:  "Test Company",
	},
}

const devToken = "mock.jwt.token.for.dev"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, ok := stubUsers[req.Email]
	if !ok || user.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": devToken,
		"user": map[string]any{
			"email":   req.Email,
			"name":    user.Name,
			"role":    user.Role,
			"company": user.Company,
		},
	})
}

func (s *Service) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"email":   "tsakani@greenbdgafrica.com",
		"name":    "Tsakani",
		"role":    "admin",
		"company": "GreenBDG Africa",
	})
}
