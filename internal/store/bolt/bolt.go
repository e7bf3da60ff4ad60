// bolt — реализация store.Store поверх встраиваемой базы bbolt.
//
// Ключи внутри единственного бакета: access_token, refresh_token, user_cache
// (JSON-сериализованный снапшот пользователя). Save и Clear выполняются в
// одной bbolt-транзакции, поэтому промежуточные состояния снаружи не видны.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"platform-client/internal/models"
	"platform-client/internal/store"
)

const (
	bucketName = "session"

	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUserCache    = "user_cache"
)

// Store — bbolt-хранилище учётных данных.
type Store struct {
	db *bbolt.DB
}

// New открывает (или создаёт) файл базы по указанному пути.
func New(path string) (*Store, error) {
	const op = "store.bolt.New"

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{db: db}, nil
}

// Save сохраняет пару токенов и (опционально) снапшот пользователя.
func (s *Store) Save(_ context.Context, pair models.TokenPair, user *models.User) error {
	const op = "store.bolt.Save"

	if !pair.Valid() {
		return fmt.Errorf("%s: %w", op, store.ErrInvalidPair)
	}

	var userJSON []byte
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		userJSON = b
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		if err := b.Put([]byte(keyAccessToken), []byte(pair.AccessToken)); err != nil {
			return err
		}
		if err := b.Put([]byte(keyRefreshToken), []byte(pair.RefreshToken)); err != nil {
			return err
		}
		if userJSON != nil {
			return b.Put([]byte(keyUserCache), userJSON)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Load возвращает сохранённую пару и снапшот пользователя.
func (s *Store) Load(_ context.Context) (models.TokenPair, *models.User, error) {
	const op = "store.bolt.Load"

	var (
		pair models.TokenPair
		user *models.User
	)

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		pair.AccessToken = string(b.Get([]byte(keyAccessToken)))
		pair.RefreshToken = string(b.Get([]byte(keyRefreshToken)))

		if raw := b.Get([]byte(keyUserCache)); len(raw) > 0 {
			var u models.User
			if err := json.Unmarshal(raw, &u); err != nil {
				return err
			}
			user = &u
		}

		return nil
	})
	if err != nil {
		return models.TokenPair{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !pair.Valid() {
		// Частично сохранённая пара равносильна отсутствующей.
		return models.TokenPair{}, nil, fmt.Errorf("%s: %w", op, store.ErrNotFound)
	}

	return pair, user, nil
}

// Clear атомарно удаляет пару токенов и кэш пользователя.
func (s *Store) Clear(_ context.Context) error {
	const op = "store.bolt.Clear"

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		for _, k := range []string{keyAccessToken, keyRefreshToken, keyUserCache} {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает базу.
func (s *Store) Close() error {
	return s.db.Close()
}
