package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	v1 "rewearadmin/pkg/api/v1"
	"rewearadmin/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func init() {
	logger.InitLogger("test")
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, ratePerSec int) *gin.Engine {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	accounts := NewAccountStore(DefaultAccounts())
	auth := NewAuthService(rdb, accounts, "test-secret", 15*time.Minute, time.Hour)
	signups := NewSignupStore(accounts)
	h := NewHandler(auth, signups)

	return RegisterRoutes(h, auth, rdb, RouterConfig{LoginRatePerSec: ratePerSec})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email, password string) v1.TokenResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/auth/login", "", v1.LoginRequest{Email: email, Password: password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", email, w.Code, w.Body.String())
	}
	var tokens v1.TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tokens); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}
	return tokens
}

func TestLoginIssuesTokenPair(t *testing.T) {
	r := newTestRouter(t, 100)

	tokens := login(t, r, "admin@rewear.kr", "admin1234!")
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("login returned an incomplete pair")
	}
	if tokens.TokenType != "Bearer" {
		t.Errorf("tokenType = %q, want Bearer", tokens.TokenType)
	}
	if tokens.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("expiresIn = %d, want 900", tokens.ExpiresIn)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := newTestRouter(t, 100)

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/auth/login", "", v1.LoginRequest{Email: "admin@rewear.kr", Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var payload v1.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil || payload.Message == "" {
		t.Errorf("error payload missing message: %s", w.Body.String())
	}
}

func TestMyRole(t *testing.T) {
	r := newTestRouter(t, 100)
	tokens := login(t, r, "manager@rewear.kr", "manager1234!")

	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/auth/my-role", tokens.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var role v1.RoleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &role); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if role.Role != string(v1.RoleManager) {
		t.Errorf("role = %q, want MANAGER", role.Role)
	}
}

func TestMyRoleWithoutToken(t *testing.T) {
	r := newTestRouter(t, 100)

	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/auth/my-role", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSignupReviewRequiresSuperAdmin(t *testing.T) {
	r := newTestRouter(t, 100)
	tokens := login(t, r, "manager@rewear.kr", "manager1234!")

	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/auth/signup-requests", tokens.AccessToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 for MANAGER", w.Code)
	}
}

func TestSignupApprovalFlow(t *testing.T) {
	r := newTestRouter(t, 100)

	// Submit a request pre-authentication.
	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/auth/signup-requests", "", v1.SignupRequest{
		Email:         "new@rewear.kr",
		Password:      "newpass1234!",
		Name:          "신규",
		RequestedRole: string(v1.RoleManager),
		Reason:        "store onboarding",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", w.Code, w.Body.String())
	}
	var rec v1.SignupRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}

	super := login(t, r, "super@rewear.kr", "super1234!")

	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/auth/signup-requests/"+rec.ID+"/approve", super.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("approve: status %d, body %s", w.Code, w.Body.String())
	}

	// Approving twice is a conflict.
	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/auth/signup-requests/"+rec.ID+"/approve", super.AccessToken, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("second approve: status %d, want 409", w.Code)
	}

	// The approved account can now log in with its requested role.
	fresh := login(t, r, "new@rewear.kr", "newpass1234!")
	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/auth/my-role", fresh.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("my-role after approval: status %d", w.Code)
	}
	var role v1.RoleResponse
	json.Unmarshal(w.Body.Bytes(), &role)
	if role.Role != string(v1.RoleManager) {
		t.Errorf("approved role = %q, want MANAGER", role.Role)
	}
}

func TestRejectUnknownSignup(t *testing.T) {
	r := newTestRouter(t, 100)
	super := login(t, r, "super@rewear.kr", "super1234!")

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/auth/signup-requests/nope/reject", super.AccessToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestRefreshRotatesPair(t *testing.T) {
	r := newTestRouter(t, 100)
	tokens := login(t, r, "admin@rewear.kr", "admin1234!")

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/auth/refresh", "", v1.RefreshRequest{RefreshToken: tokens.RefreshToken})
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: status %d, body %s", w.Code, w.Body.String())
	}

	// The old refresh token left the allow-list with the rotation.
	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/auth/refresh", "", v1.RefreshRequest{RefreshToken: tokens.RefreshToken})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("reused refresh token: status %d, want 401", w.Code)
	}
}

func TestLoginRateLimit(t *testing.T) {
	r := newTestRouter(t, 1)

	body := v1.LoginRequest{Email: "admin@rewear.kr", Password: "wrong"}
	first := doJSON(t, r, http.MethodPost, "/api/v1/admin/auth/login", "", body)
	if first.Code != http.StatusUnauthorized {
		t.Fatalf("first attempt: status %d, want 401", first.Code)
	}

	second := doJSON(t, r, http.MethodPost, "/api/v1/admin/auth/login", "", body)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second attempt: status %d, want 429", second.Code)
	}
}
