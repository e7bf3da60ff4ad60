// log — контекстная передача *slog.Logger между слоями клиента.
//
// Логгер привязывается к контексту один раз в точке входа (cmd) и
// извлекается через From везде ниже; компоненты не держат логгер в полях.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into возвращает контекст с привязанным логгером.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From извлекает логгер из контекста; если логгера нет (или по ключу
// лежит nil), возвращает slog.Default().
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}

	return slog.Default()
}
