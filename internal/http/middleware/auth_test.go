package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/pkg/ctxutil"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/services"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type fakeAuthService struct {
	userID uuid.UUID
	err    error
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, in services.RegisterInput) (*types.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeAuthService) LoginUser(ctx context.Context, email, password string) (*services.TokenPair, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeAuthService) RefreshUser(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeAuthService) LogoutUser(ctx context.Context) error {
	return fmt.Errorf("not implemented")
}

func (f *fakeAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if f.err != nil {
		return ctx, f.err
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: f.userID, Email: "t@example.com"}), nil
}

func newAuthTestRouter(t *testing.T, auth services.AuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	r := gin.New()
	r.Use(NewAuthMiddleware(log, auth).RequireAuth())
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": ctxutil.UserID(c.Request.Context())})
	})
	return r
}

func TestRequireAuth_MissingToken(t *testing.T) {
	r := newAuthTestRouter(t, &fakeAuthService{userID: uuid.New()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "unauthorized" {
		t.Fatalf("error code = %q, want unauthorized", body.Error.Code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	r := newAuthTestRouter(t, &fakeAuthService{userID: uuid.New()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuth_RejectedToken(t *testing.T) {
	r := newAuthTestRouter(t, &fakeAuthService{err: fmt.Errorf("token revoked")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired.token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuth_QueryToken(t *testing.T) {
	userID := uuid.New()
	r := newAuthTestRouter(t, &fakeAuthService{userID: userID})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token=good.token", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	r := newAuthTestRouter(t, &fakeAuthService{userID: userID})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good.token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
	var body struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.UserID != userID.String() {
		t.Fatalf("user_id = %q, want %q", body.UserID, userID)
	}
}
