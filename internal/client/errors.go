package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized — бэкенд ответил 401 и восстановить сессию рефрешем
	// не удалось (либо запрос уже был повторён один раз).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden — бэкенд ответил 403. Логируется, но никакой
	// восстановительной логики не запускает.
	ErrForbidden = errors.New("forbidden")

	// ErrServer — бэкенд ответил статусом >= 500.
	ErrServer = errors.New("server failure")

	// ErrOffline — обобщённый признак «операция отклонена из-за офлайна».
	// Конкретику несёт OfflineError.
	ErrOffline = errors.New("offline")

	// ErrNoRefreshToken — рефреш невозможен: refresh-токен отсутствует.
	// Фатальная ошибка предусловия, не ретраится.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrRefreshFailed — бэкенд отверг refresh-токен; сессия невосстановима.
	ErrRefreshFailed = errors.New("refresh failed")

	// ErrTokenDecode — не удалось локально декодировать exp из access-токена.
	// Сугубо локальная ошибка планирования: трактуется как «токен неизвестен»,
	// никогда не эскалируется как фатальная.
	ErrTokenDecode = errors.New("token decode failed")
)

// NetworkError — ответ от бэкенда не получен вовсе (DNS/сокет/обрыв).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// OfflineError — нормализованный исход сетевых/офлайн-состояний, чтобы
// вызывающий код показывал одно сообщение, не разбирая транспортные ошибки.
//
// GracePeriod — эпизод в пределах grace-окна (деградированный режим).
// Expired — grace-окно истекло, сессия подлежит принудительному завершению.
type OfflineError struct {
	GracePeriod bool
	Expired     bool
	Err         error
}

func (e *OfflineError) Error() string {
	switch {
	case e.Expired:
		return "offline: grace period expired"
	case e.GracePeriod:
		return "offline: within grace period"
	default:
		return "offline"
	}
}

func (e *OfflineError) Unwrap() error { return ErrOffline }

// APIError — HTTP-ошибка с телом ответа бэкенда.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}

	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Unwrap маппит статусы на сентинелы таксономии, чтобы вызывающий код
// работал через errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == 401:
		return ErrUnauthorized
	case e.Status == 403:
		return ErrForbidden
	case e.Status >= 500:
		return ErrServer
	default:
		return nil
	}
}
