package models

// TokenPair — пара токенов, которую клиент хранит локально.
//
// Инвариант: access и refresh живут строго вместе — либо присутствуют оба,
// либо отсутствуют оба. Пара мутируется при логине, регистрации, рефреше и
// завершении онбординга; уничтожается при logout/forced-logout.
type TokenPair struct {
	// AccessToken — короткоживущий JWT, прикрепляемый к исходящим запросам.
	AccessToken string
	// RefreshToken — долгоживущий секрет исключительно для выпуска нового access.
	RefreshToken string
}

// IsZero сообщает, что пара отсутствует целиком.
func (p TokenPair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// Valid проверяет инвариант «оба или ни одного» в присутствующей паре.
func (p TokenPair) Valid() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}
