package client

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry извлекает claim exp из access-токена БЕЗ проверки подписи.
//
// Значение используется исключительно как подсказка для планирования
// рефреша и никогда — для решений об авторизации: авторитетная проверка
// подписи и срока принадлежит бэкенду.
func tokenExpiry(token string) (time.Time, error) {
	const op = "client.expiry.tokenExpiry"

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, ErrTokenDecode)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, ErrTokenDecode)
	}

	return exp.Time, nil
}

// tokenValidAt — токен валиден строго до exp; в момент now == exp уже нет.
func tokenValidAt(token string, now time.Time) bool {
	exp, err := tokenExpiry(token)
	if err != nil {
		// Недекодируемый токен считается неизвестным/невалидным.
		return false
	}

	return now.Before(exp)
}

// AccessTokenValid сообщает, действителен ли сохранённый access-токен
// по локальной (неавторитетной) проверке срока.
func (c *Client) AccessTokenValid(ctx context.Context) bool {
	pair, _, err := c.store.Load(ctx)
	if err != nil {
		return false
	}

	return tokenValidAt(pair.AccessToken, c.now())
}
