package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"platform-client/internal/pkg/log"
	"platform-client/internal/store"
)

// refreshResult — исход завершившегося рефреша, раздаваемый ожидающим.
type refreshResult struct {
	token string
	err   error
}

// EnsureFreshToken гарантирует, что при любом числе конкурентных вызовов
// к бэкенду уходит ровно один запрос рефреша; все вызывающие получают либо
// новый access-токен, либо одну и ту же ошибку.
//
// Алгоритм: общий флаг «рефреш идёт» + FIFO-список ожидающих. Ожидающие
// получают результат в порядке постановки. Флаг снимается на обоих путях
// завершения.
func (c *Client) EnsureFreshToken(ctx context.Context) (string, error) {
	const op = "client.refresh.EnsureFreshToken"

	// В офлайне рефреш не предпринимается никогда.
	if c.offline.IsOffline() {
		return "", fmt.Errorf("%s: %w", op, c.offlineOutcome(nil))
	}

	c.mu.Lock()
	if c.refreshing {
		// Рефреш уже в полёте: встаём в очередь и ждём его исход.
		ch := make(chan refreshResult, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case res := <-ch:
			return res.token, res.err
		case <-ctx.Done():
			return "", fmt.Errorf("%s: %w", op, ctx.Err())
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	token, err := c.refreshOnce(ctx)

	// Снятие флага и FIFO-раздача результата — на обоих путях завершения.
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, w := range waiters {
		w <- refreshResult{token: token, err: err}
	}

	if err != nil {
		// Невосстановимый отказ рефреша: сессия подлежит завершению.
		c.notifyForcedLogout()
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

// refreshOnce выполняет собственно запрос рефреша и персистит результат.
// Ходит мимо конвейера Do: запросу рефреша не нужен bearer-токен и не
// положен повтор после 401.
func (c *Client) refreshOnce(ctx context.Context) (string, error) {
	const op = "client.refresh.refreshOnce"

	lg := log.From(ctx)

	pair, _, err := c.store.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrNoRefreshToken)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	var out refreshResponse
	if err := c.postPlain(ctx, "/auth/token/refresh/", refreshRequest{Refresh: pair.RefreshToken}, &out); err != nil {
		lg.Warn("token_refresh_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		var netErr *NetworkError
		if errors.As(err, &netErr) {
			c.offline.HandleNetworkError()
			return "", fmt.Errorf("%s: %w", op, err)
		}

		return "", fmt.Errorf("%s: %w", op, ErrRefreshFailed)
	}

	// Ротация refresh-токена опциональна для каждого вызова.
	rotated := pair.RefreshToken
	if out.Refresh != "" {
		rotated = out.Refresh
	}

	newPair := pair
	newPair.AccessToken = out.Access
	newPair.RefreshToken = rotated

	if err := c.store.Save(ctx, newPair, nil); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	// Успешный рефреш подтверждает связность.
	c.offline.MarkAsOnline()

	lg.Debug("token_refreshed", slog.String("op", op))

	return out.Access, nil
}

// StartAutoRefresh запускает низкочастотную проактивную проверку истечения
// access-токена. Проверка целиком пропускается в офлайне и делит с
// реактивным рефрешем ту же single-flight гарантию через EnsureFreshToken.
// Возвращённая функция останавливает таймер; повторный вызов безопасен.
func (c *Client) StartAutoRefresh(ctx context.Context) (stop func()) {
	tctx, cancel := context.WithCancel(ctx)

	go func() {
		t := time.NewTicker(c.refreshInterval)
		defer t.Stop()

		for {
			select {
			case <-tctx.Done():
				return
			case <-t.C:
				c.proactiveCheck(tctx)
			}
		}
	}()

	return cancel
}

// proactiveCheck обновляет токен, когда остаток его валидности меньше порога.
func (c *Client) proactiveCheck(ctx context.Context) {
	const op = "client.refresh.proactiveCheck"

	if c.offline.IsOffline() {
		return
	}

	pair, _, err := c.store.Load(ctx)
	if err != nil {
		return
	}

	exp, err := tokenExpiry(pair.AccessToken)
	if err == nil && exp.Sub(c.now()) >= c.refreshThreshold {
		return
	}
	// Недекодируемый токен трактуем как неизвестный и обновляем.

	if _, err := c.EnsureFreshToken(ctx); err != nil {
		log.From(ctx).Warn("proactive_refresh_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
}

// postPlain — прямой JSON POST без исходящего/входящего хуков конвейера.
func (c *Client) postPlain(ctx context.Context, path string, body, out any) error {
	const op = "client.refresh.postPlain"

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s: %w", op, parseAPIError(resp.StatusCode, respBody))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}
