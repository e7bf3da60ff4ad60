package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountState — состояние учётной записи пользователя на платформе.
type AccountState string

const (
	// AccountInvited — пользователь приглашён, но не зарегистрирован.
	AccountInvited AccountState = "invited"
	// AccountRegistered — зарегистрирован, но не прошёл онбординг.
	AccountRegistered AccountState = "registered"
	// AccountActive — полноценная активная учётная запись.
	AccountActive AccountState = "active"
	// AccountSuspended — учётная запись заблокирована.
	AccountSuspended AccountState = "suspended"
)

// User — снапшот пользователя, который возвращает бэкенд и который клиент
// кэширует локально для офлайн-режима.
//
// Кэшированный снапшот используется только как источник отображения/идентичности,
// пока бэкенд недоступен; после восстановления связи авторитетным становится
// заново загруженный профиль.
type User struct {
	ID             uuid.UUID    `json:"id"`
	Email          string       `json:"email"`
	Username       string       `json:"username"`
	AccountState   AccountState `json:"account_state"`
	ProfilePicture string       `json:"profile_picture,omitempty"`
	LastSync       *time.Time   `json:"last_sync,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NeedsOnboarding сообщает, требуется ли пользователю онбординг.
func (u *User) NeedsOnboarding() bool {
	return u != nil && u.AccountState == AccountRegistered
}
