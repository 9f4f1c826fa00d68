package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/infrastructure/backend"
	"mims-console/internal/infrastructure/localstore"
	"mims-console/pkg/utils"
)

func sessionRouter(t *testing.T, jm *utils.JWTManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware(jm))
	router.GET("/probe", func(c *gin.Context) {
		c.JSON(200, gin.H{"email": c.GetString("session_email")})
	})
	return router
}

func TestSessionMiddleware(t *testing.T) {
	jm := utils.NewJWTManager("test-secret", time.Hour)
	router := sessionRouter(t, jm)

	// No header.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/probe", nil))
	if w.Code != 401 {
		t.Errorf("no header: status = %d, want 401", w.Code)
	}

	// Malformed header.
	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)
	if w.Code != 401 {
		t.Errorf("malformed header: status = %d, want 401", w.Code)
	}

	// Token signed with a different secret.
	otherToken, err := utils.NewJWTManager("other-secret", time.Hour).GenerateSessionToken("owner@shop.in", "Owner")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)
	router.ServeHTTP(w, req)
	if w.Code != 401 {
		t.Errorf("foreign token: status = %d, want 401", w.Code)
	}

	// Valid token.
	token, err := jm.GenerateSessionToken("owner@shop.in", "Owner")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("valid token: status = %d, want 200", w.Code)
	}
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Email != "owner@shop.in" {
		t.Errorf("session email = %q", body.Email)
	}
}

func guardRouter(t *testing.T, backendHandler http.Handler) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backendHandler)
	store, err := localstore.Open(filepath.Join(t.TempDir(), "console.db"))
	if err != nil {
		srv.Close()
		t.Fatalf("open store: %v", err)
	}
	profiles := service.NewProfileService(backend.New(srv.URL, &http.Client{}), store)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("session_email", "owner@shop.in")
	})
	router.Use(RequireBusinessProfile(profiles))
	router.GET("/probe", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	return router, func() {
		srv.Close()
		store.Close()
	}
}

func TestRequireBusinessProfileMissing(t *testing.T) {
	router, done := guardRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer done()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/probe", nil))

	// Missing profile is a conflict with a redirect target, distinct from
	// 401: the session itself is fine.
	if w.Code != 409 {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	var body struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Redirect != BusinessProfileRoute {
		t.Errorf("redirect = %q, want %q", body.Redirect, BusinessProfileRoute)
	}
}

func TestRequireBusinessProfilePresent(t *testing.T) {
	router, done := guardRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"businessName": "Sharma Stores", "businessEmail": "owner@shop.in", "businessCategory": "Retail Shop"}`))
	}))
	defer done()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/probe", nil))
	if w.Code != 200 {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequireBusinessProfileBackendDown(t *testing.T) {
	router, done := guardRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer done()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/probe", nil))

	// An outage must not masquerade as "no profile".
	if w.Code == 409 {
		t.Error("backend outage reported as missing profile")
	}
	if w.Code != 502 {
		t.Errorf("status = %d, want 502", w.Code)
	}
}
