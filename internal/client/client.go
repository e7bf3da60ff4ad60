// client реализует устойчивый аутентифицированный API-клиент платформы:
// конвейер HTTP-запросов с прикреплением bearer-токена, классификацией
// отказов и однократным повтором после рефреша, а также координатор
// single-flight рефреша с FIFO-очередью ожидающих.
//
// Бизнес-эндпоинты (проекты/пайплайны/датасеты) для конвейера непрозрачны:
// их обёртки ходят через Do и не добавляют собственной логики отказов.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"platform-client/internal/config"
	"platform-client/internal/offline"
	"platform-client/internal/pkg/log"
	"platform-client/internal/store"
)

// Client — API-клиент с устойчивой сессией.
//
// Учётные данные мутирует только координатор рефреша и явные
// login/register/logout вызовы; конвейер их лишь читает.
type Client struct {
	baseURL    string
	httpClient *http.Client

	store   store.Store
	offline offline.Service

	refreshThreshold time.Duration
	refreshInterval  time.Duration

	now func() time.Time

	// Координатор рефреша: один общий флаг + FIFO-список ожидающих.
	mu         sync.Mutex
	refreshing bool
	waiters    []chan refreshResult

	// forcedLogout регистрирует оркестратор; клиент лишь пишет сигнал.
	forcedLogout chan<- struct{}
}

// New создаёт клиент поверх хранилища учётных данных и машины связности.
func New(cfg *config.Config, st store.Store, off offline.Service) *Client {
	return &Client{
		baseURL:          strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient:       &http.Client{Timeout: cfg.API.Timeout},
		store:            st,
		offline:          off,
		refreshThreshold: cfg.Auth.RefreshThreshold,
		refreshInterval:  cfg.Auth.RefreshInterval,
		now:              time.Now,
	}
}

// SetForcedLogoutSignal регистрирует канал принудительного разлогина.
// Канал принадлежит оркестратору сессии; клиент пишет в него неблокирующе.
func (c *Client) SetForcedLogoutSignal(ch chan<- struct{}) {
	c.forcedLogout = ch
}

func (c *Client) notifyForcedLogout() {
	if c.forcedLogout == nil {
		return
	}

	select {
	case c.forcedLogout <- struct{}{}:
	default:
		// Сигнал уже ожидает обработки.
	}
}

// Do выполняет запрос через конвейер: прикрепляет bearer-токен,
// классифицирует отказ и при 401 один раз повторяет запрос после рефреша.
// body (если не nil) сериализуется в JSON; out (если не nil) — адрес
// структуры для десериализации успешного ответа.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, retried bool) error {
	const op = "client.do"

	lg := log.From(ctx)

	var (
		reqBody io.Reader
		raw     []byte
	)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		raw = b
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	// Исходящий хук: bearer-токен прикрепляется, если он есть.
	if pair, _, err := c.store.Load(ctx); err == nil {
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Ответа нет — сигнал недоступности бэкенда.
		return c.handleNetworkFailure(ctx, method, path, raw, &NetworkError{Err: err})
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case resp.StatusCode < http.StatusMultipleChoices:
		// Успешный вызов подтверждает связность.
		c.offline.MarkAsOnline()

		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		apiErr := parseAPIError(resp.StatusCode, respBody)
		if retried {
			return fmt.Errorf("%s: %w", op, apiErr)
		}

		// Рефреш в офлайне не предпринимается никогда.
		if c.offline.IsOffline() {
			return fmt.Errorf("%s: %w", op, c.offlineOutcome(nil))
		}

		if _, err := c.EnsureFreshToken(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return c.do(ctx, method, path, body, out, true)

	case resp.StatusCode == http.StatusForbidden:
		apiErr := parseAPIError(resp.StatusCode, respBody)
		lg.Warn("request_forbidden",
			slog.String("op", op),
			slog.String("method", method),
			slog.String("path", path),
		)

		return fmt.Errorf("%s: %w", op, apiErr)

	case resp.StatusCode >= http.StatusInternalServerError:
		apiErr := parseAPIError(resp.StatusCode, respBody)

		// 502/503 — шлюз без бэкенда: дополнительно сигнал недоступности.
		if resp.StatusCode == http.StatusBadGateway || resp.StatusCode == http.StatusServiceUnavailable {
			return c.handleNetworkFailure(ctx, method, path, raw, apiErr)
		}

		return fmt.Errorf("%s: %w", op, apiErr)

	default:
		return fmt.Errorf("%s: %w", op, parseAPIError(resp.StatusCode, respBody))
	}
}

// handleNetworkFailure фиксирует сбой связности, при необходимости ставит
// мутирующий вызов в очередь офлайн-операций и нормализует исход.
func (c *Client) handleNetworkFailure(ctx context.Context, method, path string, body []byte, cause error) error {
	const op = "client.handleNetworkFailure"

	lg := log.From(ctx)

	c.offline.HandleNetworkError()

	if isMutating(method) && c.offline.IsWithinGracePeriod() {
		c.offline.QueueOperation(offline.Operation{
			Method: method,
			Path:   path,
			Body:   body,
		})
		lg.Info("operation_queued_offline",
			slog.String("op", op),
			slog.String("method", method),
			slog.String("path", path),
		)
	}

	return fmt.Errorf("%s: %w", op, c.offlineOutcome(cause))
}

// offlineOutcome собирает нормализованный офлайн-исход по текущему состоянию.
func (c *Client) offlineOutcome(cause error) *OfflineError {
	within := c.offline.IsWithinGracePeriod()

	return &OfflineError{
		GracePeriod: within,
		Expired:     c.offline.IsOffline() && !within,
		Err:         cause,
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// parseAPIError разбирает тело ошибки формата {"error":{"code","message"}};
// на нечитаемое тело отвечает пустыми code/message.
func parseAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return &APIError{Status: status, Message: http.StatusText(status)}
	}

	msg := payload.Error.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &APIError{
		Status:  status,
		Code:    payload.Error.Code,
		Message: msg,
	}
}
