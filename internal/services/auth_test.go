package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studyloop/studyloop-backend/internal/pkg/ctxutil"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
	"github.com/studyloop/studyloop-backend/internal/repos"
	"github.com/studyloop/studyloop-backend/internal/types"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}, &types.UserToken{}, &types.Workspace{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewAuthService(db, log,
		repos.NewUserRepo(db, log),
		repos.NewUserTokenRepo(db, log),
		repos.NewWorkspaceRepo(db, log),
		nil,
		"test-secret-key",
		time.Hour,
		24*time.Hour,
	)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, RegisterInput{Email: "not-an-email", Password: "longenough"}); err == nil {
		t.Fatalf("expected error for invalid email")
	}
	if _, err := svc.RegisterUser(ctx, RegisterInput{Email: "a@example.com", Password: "short"}); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestAuthService_RegisterCreatesDefaultWorkspace(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterInput{
		Email: "Student@Example.COM", Password: "supersecret", FirstName: "A", LastName: "B",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "student@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}

	// Re-registering the same email is rejected.
	if _, err := svc.RegisterUser(ctx, RegisterInput{
		Email: "student@example.com", Password: "supersecret",
	}); err == nil {
		t.Fatalf("expected duplicate email error")
	}
}

func TestAuthService_LoginAndTokenFlow(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterInput{Email: "a@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.LoginUser(ctx, "a@example.com", "wrongpassword"); err == nil {
		t.Fatalf("expected login failure with wrong password")
	}

	pair, err := svc.LoginUser(ctx, "a@example.com", "supersecret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty token pair: %+v", pair)
	}

	authed, err := svc.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := ctxutil.GetRequestData(authed)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("unexpected request data: %+v", rd)
	}

	// Refresh rotates the pair and revokes the old one.
	rotated, err := svc.RefreshUser(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.AccessToken == pair.AccessToken {
		t.Fatalf("access token not rotated")
	}
	if _, err := svc.RefreshUser(ctx, pair.RefreshToken); err == nil {
		t.Fatalf("old refresh token should be rejected after rotation")
	}
	if _, err := svc.SetContextFromToken(ctx, pair.AccessToken); err == nil {
		t.Fatalf("old access token should be rejected after rotation")
	}
	if _, err := svc.SetContextFromToken(ctx, rotated.AccessToken); err != nil {
		t.Fatalf("rotated access token rejected: %v", err)
	}
}

func TestAuthService_BogusToken(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.SetContextFromToken(context.Background(), "not.a.jwt")
	if err == nil {
		t.Fatalf("expected error for bogus token")
	}
	if apierr.From(err).Status != 401 {
		t.Fatalf("expected 401, got %d", apierr.From(err).Status)
	}
}
