package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/ctxutil"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
	"github.com/studyloop/studyloop-backend/internal/repos"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type AuthService interface {
	RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (*TokenPair, error)
	RefreshUser(ctx context.Context, refreshToken string) (*TokenPair, error)
	LogoutUser(ctx context.Context) error
	// SetContextFromToken verifies the token signature and the stored
	// token row, then attaches the caller identity to ctx.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	workspaceRepo repos.WorkspaceRepo
	avatarService AvatarService
	jwtSecretKey  []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	workspaceRepo repos.WorkspaceRepo,
	avatarService AvatarService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		workspaceRepo: workspaceRepo,
		avatarService: avatarService,
		jwtSecretKey:  []byte(jwtSecretKey),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (as *authService) RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apierr.Invalid(fmt.Errorf("invalid email"))
	}
	if len(in.Password) < 8 {
		return nil, apierr.Invalid(fmt.Errorf("password must be at least 8 characters"))
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apierr.Invalid(fmt.Errorf("email already registered"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}

	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		// Every user starts with exactly one default workspace.
		ws := &types.Workspace{
			ID:        uuid.New(),
			UserID:    user.ID,
			Name:      "My Workspace",
			IsDefault: true,
		}
		if err := as.workspaceRepo.Create(ctx, tx, ws); err != nil {
			return fmt.Errorf("create default workspace: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	// Avatar generation is a side effect; registration succeeds without it.
	if as.avatarService != nil {
		if err := as.avatarService.CreateAndUploadUserAvatar(ctx, nil, user); err != nil {
			as.log.Warn("avatar generation failed", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Unauthorized(fmt.Errorf("invalid email or password"))
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apierr.Unauthorized(fmt.Errorf("invalid email or password"))
	}

	var pair *TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Expired tokens from earlier sessions are cleared on login.
		existing, err := as.userTokenRepo.GetByUserID(ctx, tx, user.ID)
		if err != nil {
			return fmt.Errorf("check user tokens: %w", err)
		}
		for _, t := range existing {
			if t.ExpiresAt.Before(time.Now()) {
				if err := as.userTokenRepo.DeleteByID(ctx, tx, t.ID); err != nil {
					return fmt.Errorf("delete expired token: %w", err)
				}
			}
		}
		pair, err = as.issueTokens(ctx, tx, user)
		return err
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if _, err := as.parseToken(refreshToken); err != nil {
		return nil, apierr.Unauthorized(fmt.Errorf("invalid refresh token"))
	}

	row, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Unauthorized(fmt.Errorf("unknown refresh token"))
		}
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}

	user, err := as.userRepo.GetByID(ctx, nil, row.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	var pair *TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userTokenRepo.DeleteByID(ctx, tx, row.ID); err != nil {
			return fmt.Errorf("rotate token: %w", err)
		}
		pair, err = as.issueTokens(ctx, tx, user)
		return err
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.Unauthorized(fmt.Errorf("not logged in"))
	}
	if err := as.userTokenRepo.DeleteByUserID(ctx, nil, rd.UserID); err != nil {
		return fmt.Errorf("delete user tokens: %w", err)
	}
	return nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims, err := as.parseToken(tokenString)
	if err != nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid token: %w", err))
	}

	row, err := as.userTokenRepo.GetByAccessToken(ctx, nil, tokenString)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx, apierr.Unauthorized(fmt.Errorf("token revoked"))
		}
		return ctx, fmt.Errorf("lookup access token: %w", err)
	}
	if row.ExpiresAt.Before(time.Now()) {
		return ctx, apierr.Unauthorized(fmt.Errorf("token expired"))
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID != row.UserID {
		return ctx, apierr.Unauthorized(fmt.Errorf("token subject mismatch"))
	}

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID: userID,
		Email:  claims.Email,
	}), nil
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	now := time.Now()
	access, err := as.signToken(user, now, as.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := as.signToken(user, now, as.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	row := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(as.accessTTL),
	}
	if err := as.userTokenRepo.Create(ctx, tx, row); err != nil {
		return nil, fmt.Errorf("persist tokens: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(as.accessTTL.Seconds()),
	}, nil
}

func (as *authService) signToken(user *types.User, now time.Time, ttl time.Duration) (string, error) {
	claims := accessClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.jwtSecretKey)
}

func (as *authService) parseToken(tokenString string) (*accessClaims, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.jwtSecretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token invalid")
	}
	return &claims, nil
}
