package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"platform-client/internal/models"
	"platform-client/internal/pkg/log"
)

// Запросы/ответы auth-эндпоинтов бэкенда (§ external interfaces).

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest — входные данные регистрации.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse — ответ login/register. Access/Refresh могут отсутствовать,
// если регистрация требует отдельного шага подтверждения.
type authResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *models.User `json:"user"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type logoutRequest struct {
	Refresh string `json:"refresh"`
}

// Login выполняет вход и персистит пару токенов вместе со снапшотом
// пользователя как единый блок.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	const op = "client.api.Login"

	var out authResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login/", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pair := models.TokenPair{AccessToken: out.Access, RefreshToken: out.Refresh}
	if err := c.store.Save(ctx, pair, out.User); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out.User, nil
}

// Register регистрирует пользователя. Если бэкенд вернул пару токенов,
// она персистится сразу; иначе (отдельный шаг подтверждения) возвращается
// только снапшот пользователя.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	const op = "client.api.Register"

	var out authResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/register/", req, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pair := models.TokenPair{AccessToken: out.Access, RefreshToken: out.Refresh}
	if pair.Valid() {
		if err := c.store.Save(ctx, pair, out.User); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return out.User, nil
}

// Profile загружает авторитетный профиль пользователя.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	const op = "client.api.Profile"

	var user models.User
	if err := c.Do(ctx, http.MethodGet, "/auth/profile/", nil, &user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// CompleteOnboarding завершает онбординг. Бэкенд возвращает обновлённый
// снапшот пользователя и может выдать свежую пару токенов.
func (c *Client) CompleteOnboarding(ctx context.Context) (*models.User, error) {
	const op = "client.api.CompleteOnboarding"

	var out authResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/onboarding/", nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pair := models.TokenPair{AccessToken: out.Access, RefreshToken: out.Refresh}
	if !pair.Valid() {
		// Токены не ротировались — обновляем только снапшот при текущей паре.
		current, _, err := c.store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pair = current
	}

	if err := c.store.Save(ctx, pair, out.User); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out.User, nil
}

// Logout отзывает refresh-токен на бэкенде. Вызов best-effort: любые
// ошибки проглатываются — локальная очистка сессии от них не зависит.
func (c *Client) Logout(ctx context.Context) {
	const op = "client.api.Logout"

	pair, _, err := c.store.Load(ctx)
	if err != nil {
		return
	}

	if err := c.Do(ctx, http.MethodPost, "/auth/logout/", logoutRequest{Refresh: pair.RefreshToken}, nil); err != nil {
		log.From(ctx).Debug("logout_revoke_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
}
