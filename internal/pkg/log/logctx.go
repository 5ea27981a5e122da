// log связывает *slog.Logger с контекстом запроса: middleware кладёт
// request-scoped логгер через Into, нижние слои достают его From,
// ничего не зная о транспорте.
package log

import (
	"context"
	"log/slog"
)

// ctxKey — приватный тип ключа, исключает коллизии с чужими значениями.
type ctxKey struct{}

// Into возвращает контекст-потомок с логгером l.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From возвращает логгер из контекста. Если логгера нет, значение имеет
// чужой тип или это typed-nil, возвращается slog.Default().
func From(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok || l == nil {
		return slog.Default()
	}

	return l
}
