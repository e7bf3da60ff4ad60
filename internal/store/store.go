// store описывает контракт локального хранилища учётных данных клиента.
//
// Хранилище оперирует парой токенов и кэшированным снапшотом пользователя
// как единым логическим блоком: сохранение и очистка атомарны с точки зрения
// вызывающего кода — невозможно наблюдать состояние, где access присутствует
// без refresh или наоборот. Сетевой и валидационной логики здесь нет.
package store

import (
	"context"
	"errors"

	"platform-client/internal/models"
)

var (
	// ErrNotFound — учётные данные в хранилище отсутствуют.
	ErrNotFound = errors.New("credentials not found")

	// ErrInvalidPair — попытка сохранить пару, нарушающую инвариант
	// «оба токена или ни одного».
	ErrInvalidPair = errors.New("invalid token pair")
)

// Store — контракт хранилища учётных данных.
type Store interface {
	// Save сохраняет пару токенов и (опционально) снапшот пользователя.
	// user == nil оставляет ранее сохранённый снапшот без изменений.
	Save(ctx context.Context, pair models.TokenPair, user *models.User) error

	// Load возвращает сохранённую пару и снапшот пользователя (может быть nil).
	// Если пары нет — ErrNotFound.
	Load(ctx context.Context) (models.TokenPair, *models.User, error)

	// Clear атомарно удаляет пару токенов и кэш пользователя.
	// Отсутствие данных ошибкой не считается.
	Clear(ctx context.Context) error

	// Close освобождает ресурсы хранилища.
	Close() error
}
