package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/letierre/chamados-a-servir-final/backend/config"
	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/jwt"
)

func setupAuthService() (AuthService, *testMocks) {
	repo, mocks := newTestRepo()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "chave-de-teste-com-tamanho-bom",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, mocks
}

func seedUser(mocks *testMocks, email, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		UserID:       "user-" + email,
		Name:         "Secretário de Teste",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleSecretary,
	}
	mocks.users.users[user.UserID] = user
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, mocks := setupAuthService()
	seedUser(mocks, "sec@estaca.org", "senha123")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sec@estaca.org",
		Password: "senha123",
	})
	if err != nil {
		t.Fatalf("Login deveria passar: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("par de tokens não deve ser vazio")
	}
	if result.ExpiresIn != 900 {
		t.Errorf("esperava expires_in 900, obtido %d", result.ExpiresIn)
	}
	if result.User.Email != "sec@estaca.org" {
		t.Errorf("usuário incorreto na resposta: %s", result.User.Email)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mocks := setupAuthService()
	seedUser(mocks, "sec@estaca.org", "senha123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sec@estaca.org",
		Password: "errada",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("esperava ErrInvalidCredentials, obtido %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := setupAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ninguem@estaca.org",
		Password: "senha123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("esperava ErrInvalidCredentials, obtido %v", err)
	}
}

func TestRefresh_Success(t *testing.T) {
	svc, mocks := setupAuthService()
	seedUser(mocks, "sec@estaca.org", "senha123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sec@estaca.org",
		Password: "senha123",
	})
	if err != nil {
		t.Fatalf("Login falhou: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Refresh deveria passar: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("novo access token não deve ser vazio")
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, mocks := setupAuthService()
	seedUser(mocks, "sec@estaca.org", "senha123")

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sec@estaca.org",
		Password: "senha123",
	})

	// Access token não serve para renovar a sessão
	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.AccessToken,
	})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("esperava ErrInvalidRefreshToken, obtido %v", err)
	}
}

func TestRefresh_Garbage(t *testing.T) {
	svc, _ := setupAuthService()

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: "token.qualquer.coisa",
	})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("esperava ErrInvalidRefreshToken, obtido %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, mocks := setupAuthService()
	user := seedUser(mocks, "sec@estaca.org", "senha123")

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		CurrentPassword: "senha123",
		NewPassword:     "novaSenha456",
	})
	if err != nil {
		t.Fatalf("ChangePassword deveria passar: %v", err)
	}

	// A nova senha vale para o próximo login
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sec@estaca.org",
		Password: "novaSenha456",
	}); err != nil {
		t.Fatalf("login com a nova senha deveria passar: %v", err)
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, mocks := setupAuthService()
	user := seedUser(mocks, "sec@estaca.org", "senha123")

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		CurrentPassword: "errada",
		NewPassword:     "novaSenha456",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("esperava ErrWrongPassword, obtido %v", err)
	}
}

func TestMe(t *testing.T) {
	svc, mocks := setupAuthService()
	user := seedUser(mocks, "sec@estaca.org", "senha123")

	result, err := svc.Me(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("Me deveria passar: %v", err)
	}
	if result.Email != "sec@estaca.org" || result.Role != model.RoleSecretary {
		t.Errorf("dados incorretos: %+v", result)
	}

	if _, err := svc.Me(context.Background(), "inexistente"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("esperava ErrUserNotFound, obtido %v", err)
	}
}
