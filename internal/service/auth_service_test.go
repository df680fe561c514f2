package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"classtime/backend/config"
	"classtime/backend/internal/dto"
	"classtime/backend/internal/model"
	"classtime/backend/internal/repository"
	"classtime/backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *mockProfileRepo) {
	profileRepo := newMockProfileRepo()
	repo := &repository.Repository{Profile: profileRepo}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-16chars!",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// Redis 置 nil：黑名单路径降级
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, profileRepo
}

func seedUser(repo *mockProfileRepo, email, password, role string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	p := &model.Profile{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "测试用户",
		Role:         role,
	}
	repo.Create(context.Background(), p)
	return p.ID
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := setupTestAuthService()

	result, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "t@school.cn",
		Password: "password123",
		FullName: "张老师",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if result.Role != model.RoleTeacher {
		t.Errorf("期望默认角色teacher，实际=%s", result.Role)
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, profileRepo := setupTestAuthService()
	seedUser(profileRepo, "t@school.cn", "password123", model.RoleTeacher)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "t@school.cn",
		Password: "password123",
		FullName: "李老师",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, profileRepo := setupTestAuthService()
	seedUser(profileRepo, "t@school.cn", "password123", model.RoleTeacher)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "t@school.cn",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("期望返回 token 对")
	}
	if result.User.Email != "t@school.cn" {
		t.Errorf("期望用户邮箱t@school.cn，实际=%s", result.User.Email)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, profileRepo := setupTestAuthService()
	seedUser(profileRepo, "t@school.cn", "password123", model.RoleTeacher)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "t@school.cn",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@school.cn",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, profileRepo := setupTestAuthService()
	seedUser(profileRepo, "t@school.cn", "password123", model.RoleTeacher)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "t@school.cn",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("期望新的 access token")
	}
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, profileRepo := setupTestAuthService()
	seedUser(profileRepo, "t@school.cn", "password123", model.RoleTeacher)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "t@school.cn",
		Password: "password123",
	})

	// 用 access token 换新：拒绝
	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.AccessToken,
	})
	if !errors.Is(err, ErrNotRefreshToken) {
		t.Errorf("期望 ErrNotRefreshToken，实际: %v", err)
	}
}

// ── Me 测试 ──

func TestAuthService_Me(t *testing.T) {
	svc, profileRepo := setupTestAuthService()
	userID := seedUser(profileRepo, "t@school.cn", "password123", model.RoleAdmin)

	result, err := svc.Me(context.Background(), userID)
	if err != nil {
		t.Fatalf("Me 应成功: %v", err)
	}
	if result.Role != model.RoleAdmin {
		t.Errorf("期望角色admin，实际=%s", result.Role)
	}

	if _, err := svc.Me(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
