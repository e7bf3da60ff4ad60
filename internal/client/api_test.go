package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"platform-client/internal/models"
)

func TestLogin_PersistsPairAndUser(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login/", r.URL.Path)

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "user@example.com", req.Email)

		writeJSON(t, w, http.StatusOK, map[string]any{
			"access":  "access-1",
			"refresh": "refresh-1",
			"user": map[string]any{
				"id":            userID.String(),
				"email":         "user@example.com",
				"username":      "user",
				"account_state": "active",
			},
		})
	}))
	defer srv.Close()

	st := &storeState{}
	c, _ := newTestClient(t, srv.URL, st)

	user, err := c.Login(context.Background(), "user@example.com", "Abcdef1!")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, userID, user.ID)
	require.Equal(t, models.AccountActive, user.AccountState)

	pair, cached, ok := st.snapshot()
	require.True(t, ok)
	require.Equal(t, "access-1", pair.AccessToken)
	require.Equal(t, "refresh-1", pair.RefreshToken)
	require.NotNil(t, cached)
	require.Equal(t, userID, cached.ID)
}

func TestRegister_WithoutTokens_NothingPersisted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register/", r.URL.Path)

		// Регистрация с отдельным шагом подтверждения: токенов нет.
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": map[string]any{
				"id":            uuid.NewString(),
				"email":         "new@example.com",
				"account_state": "invited",
			},
		})
	}))
	defer srv.Close()

	st := &storeState{}
	c, _ := newTestClient(t, srv.URL, st)

	user, err := c.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Username: "new",
		Password: "Abcdef1!",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, models.AccountInvited, user.AccountState)

	_, _, ok := st.snapshot()
	require.False(t, ok)
}

func TestCompleteOnboarding_KeepsPairWhenNotRotated(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/onboarding/", r.URL.Path)

		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": map[string]any{
				"id":            uuid.NewString(),
				"email":         "user@example.com",
				"account_state": "active",
			},
		})
	}))
	defer srv.Close()

	st := &storeState{}
	st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, &models.User{
		Email:        "user@example.com",
		AccountState: models.AccountRegistered,
	})

	c, _ := newTestClient(t, srv.URL, st)

	user, err := c.CompleteOnboarding(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, models.AccountActive, user.AccountState)
	require.False(t, user.NeedsOnboarding())

	pair, cached, ok := st.snapshot()
	require.True(t, ok)
	require.Equal(t, "access-1", pair.AccessToken)
	require.Equal(t, "refresh-1", pair.RefreshToken)
	require.Equal(t, models.AccountActive, cached.AccountState)
}

func TestProfile_ReturnsUser(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/profile/", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)

		writeJSON(t, w, http.StatusOK, map[string]any{
			"id":            userID.String(),
			"email":         "user@example.com",
			"account_state": "registered",
		})
	}))
	defer srv.Close()

	st := &storeState{}
	st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, nil)

	c, _ := newTestClient(t, srv.URL, st)

	user, err := c.Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, userID, user.ID)
	require.True(t, user.NeedsOnboarding())
}

func TestLogout_BestEffort(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{
			"error": map[string]string{"code": "INTERNAL", "message": "boom"},
		})
	}))
	defer srv.Close()

	st := &storeState{}
	st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, nil)

	c, _ := newTestClient(t, srv.URL, st)

	// Ошибка отзыва проглатывается: Logout не возвращает ошибку и не паникует.
	c.Logout(context.Background())
}

func TestLogout_NoCredentials_NoRequest(t *testing.T) {
	t.Parallel()

	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, &storeState{})

	c.Logout(context.Background())
	require.Zero(t, calls)
}
