package models

// SessionView — производное представление сессии для вызывающего кода (UI).
//
// Не хранится: пересчитывается из пары токенов, состояния связности и
// последнего загруженного/кэшированного пользователя при каждом переходе.
type SessionView struct {
	// User — текущий пользователь (авторитетный либо кэшированный).
	User *User `json:"user,omitempty"`
	// IsAuthenticated — активна ли сессия.
	IsAuthenticated bool `json:"is_authenticated"`
	// NeedsOnboarding — требуется ли онбординг.
	NeedsOnboarding bool `json:"needs_onboarding"`
	// OfflineMode — работает ли сессия в офлайн-режиме (grace-период).
	OfflineMode bool `json:"offline_mode"`
	// DaysRemaining — оставшиеся дни grace-периода (0, если онлайн).
	DaysRemaining int `json:"days_remaining"`
}
