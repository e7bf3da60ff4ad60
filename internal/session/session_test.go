package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"platform-client/internal/client"
	"platform-client/internal/config"
	"platform-client/internal/models"
	"platform-client/internal/offline"
	"platform-client/internal/store"
	"platform-client/mocks"
	"platform-client/mocks/apimocks"
)

func testCfg(poll time.Duration) *config.Config {
	return &config.Config{
		Env: "local",
		API: config.APIConfig{
			BaseURL: "http://backend.local",
			Timeout: 5 * time.Second,
		},
		Auth: config.AuthConfig{
			RefreshThreshold: 5 * time.Minute,
			RefreshInterval:  time.Minute,
		},
		Offline: config.OfflineConfig{
			GracePeriod:  168 * time.Hour,
			PollInterval: poll,
			ProbeTimeout: time.Second,
			ProbePath:    "/healthz",
		},
	}
}

// storeState — состояние мока хранилища, разделяемое между ожиданиями.
type storeState struct {
	mu     sync.Mutex
	pair   models.TokenPair
	user   *models.User
	has    bool
	clears int
}

func (s *storeState) set(pair models.TokenPair, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = pair
	s.user = user
	s.has = true
}

func (s *storeState) cleared() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clears
}

func newStoreMock(t *testing.T, ctrl *gomock.Controller, st *storeState) *mocks.MockStore {
	t.Helper()

	m := mocks.NewMockStore(ctrl)

	m.EXPECT().Load(gomock.Any()).DoAndReturn(func(context.Context) (models.TokenPair, *models.User, error) {
		st.mu.Lock()
		defer st.mu.Unlock()

		if !st.has {
			return models.TokenPair{}, nil, store.ErrNotFound
		}

		return st.pair, st.user, nil
	}).AnyTimes()

	m.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pair models.TokenPair, user *models.User) error {
		st.mu.Lock()
		defer st.mu.Unlock()

		st.pair = pair
		st.has = true
		if user != nil {
			st.user = user
		}

		return nil
	}).AnyTimes()

	m.EXPECT().Clear(gomock.Any()).DoAndReturn(func(context.Context) error {
		st.mu.Lock()
		defer st.mu.Unlock()

		st.pair = models.TokenPair{}
		st.user = nil
		st.has = false
		st.clears++

		return nil
	}).AnyTimes()

	return m
}

type env struct {
	sess      *Session
	api       *apimocks.MockAPI
	st        *storeState
	off       *offline.Manager
	reachable *atomic.Bool
}

// newEnv собирает оркестратор поверх мока API, мока хранилища и настоящей
// машины связности с управляемой пробой.
func newEnv(t *testing.T, poll, grace time.Duration) *env {
	t.Helper()

	ctrl := gomock.NewController(t)

	reachable := &atomic.Bool{}
	reachable.Store(true)

	off := offline.NewManager(grace, func(context.Context) bool { return reachable.Load() })

	api := apimocks.NewMockAPI(ctrl)
	api.EXPECT().SetForcedLogoutSignal(gomock.Any()).Times(1)
	api.EXPECT().StartAutoRefresh(gomock.Any()).Return(func() {}).AnyTimes()

	st := &storeState{}
	sess := New(testCfg(poll), api, newStoreMock(t, ctrl, st), off)
	t.Cleanup(sess.Close)

	return &env{sess: sess, api: api, st: st, off: off, reachable: reachable}
}

func activeUser() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		Username:     "user",
		AccountState: models.AccountActive,
	}
}

// Сценарий 1: учётных данных нет — неаутентифицирован без единого
// сетевого вызова (на моках нет ни одного ожидания сетевых методов).
func TestInit_NoCredentials(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	view, err := e.sess.Init(context.Background())
	require.NoError(t, err)
	require.False(t, view.IsAuthenticated)
	require.Nil(t, view.User)
	require.False(t, view.OfflineMode)
}

// Сценарий 4 (прямой путь): проба прошла, токен валиден, профиль загружен.
func TestInit_OnlineAuthenticated(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	user := activeUser()
	e.st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, user)

	e.api.EXPECT().AccessTokenValid(gomock.Any()).Return(true)
	e.api.EXPECT().Profile(gomock.Any()).Return(user, nil)

	view, err := e.sess.Init(context.Background())
	require.NoError(t, err)
	require.True(t, view.IsAuthenticated)
	require.False(t, view.OfflineMode)
	require.Equal(t, user.ID, view.User.ID)
	require.Zero(t, view.DaysRemaining)
}

// Сценарий 3: токен локально истёк, рефреш отвергнут — принудительный
// разлогин с очисткой хранилища.
func TestInit_RefreshRejected_ForcesLogout(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	e.st.set(models.TokenPair{AccessToken: "stale", RefreshToken: "revoked"}, activeUser())

	e.api.EXPECT().AccessTokenValid(gomock.Any()).Return(false)
	e.api.EXPECT().EnsureFreshToken(gomock.Any()).Return("", client.ErrRefreshFailed)

	view, err := e.sess.Init(context.Background())
	require.NoError(t, err)
	require.False(t, view.IsAuthenticated)
	require.Equal(t, 1, e.st.cleared())
}

// Сценарий 2: проба не прошла, кэш есть, grace-окно живо — офлайн-сессия
// на кэшированном снапшоте с остатком дней.
func TestInit_OfflineWithinGrace(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)
	e.reachable.Store(false)

	user := activeUser()
	e.st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, user)

	view, err := e.sess.Init(context.Background())
	require.NoError(t, err)
	require.True(t, view.IsAuthenticated)
	require.True(t, view.OfflineMode)
	require.Equal(t, user.ID, view.User.ID)
	require.Equal(t, 7, view.DaysRemaining)
}

// Сценарий 2, истёкшее окно: grace-период нулевой — разлогин.
func TestInit_OfflineExpired_ForcesLogout(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 0)
	e.reachable.Store(false)

	e.st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, activeUser())

	view, err := e.sess.Init(context.Background())
	require.NoError(t, err)
	require.False(t, view.IsAuthenticated)
	require.Equal(t, 1, e.st.cleared())
}

// Повторный Init — no-op: возвращает текущее представление без новых
// сетевых вызовов (ожидания на моках однократные).
func TestInit_RunsOnce(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	user := activeUser()
	e.st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, user)

	e.api.EXPECT().AccessTokenValid(gomock.Any()).Return(true).Times(1)
	e.api.EXPECT().Profile(gomock.Any()).Return(user, nil).Times(1)

	first, err := e.sess.Init(context.Background())
	require.NoError(t, err)

	second, err := e.sess.Init(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.IsAuthenticated, second.IsAuthenticated)
}

// Отказ загрузки профиля после успешной пробы из-за потери связности:
// в пределах grace-окна сессия деградирует в офлайн, а не разваливается.
func TestInit_ProfileNetworkFailure_FallsBackOffline(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	user := activeUser()
	e.st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, user)

	// Машина связности уже зафиксировала сбой внутри клиента.
	offlineErr := &client.OfflineError{GracePeriod: true}

	e.api.EXPECT().AccessTokenValid(gomock.Any()).Return(true)
	e.api.EXPECT().Profile(gomock.Any()).DoAndReturn(func(context.Context) (*models.User, error) {
		e.off.HandleNetworkError()
		return nil, offlineErr
	})

	view, err := e.sess.Init(context.Background())
	require.NoError(t, err)
	require.True(t, view.IsAuthenticated)
	require.True(t, view.OfflineMode)
	require.Equal(t, user.ID, view.User.ID)
}

func TestLogin_ActivatesSession(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	user := activeUser()
	e.api.EXPECT().Login(gomock.Any(), "user@example.com", "Abcdef1!").Return(user, nil)

	view, err := e.sess.Login(context.Background(), "user@example.com", "Abcdef1!")
	require.NoError(t, err)
	require.True(t, view.IsAuthenticated)
	require.False(t, view.NeedsOnboarding)
}

// Успешный ответ логина с токенами, но без объекта пользователя:
// сессия активируется без снапшота и без паники.
func TestLogin_WithoutUserSnapshot(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	e.st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, nil)
	e.api.EXPECT().Login(gomock.Any(), "user@example.com", "Abcdef1!").Return(nil, nil)

	view, err := e.sess.Login(context.Background(), "user@example.com", "Abcdef1!")
	require.NoError(t, err)
	require.True(t, view.IsAuthenticated)
	require.Nil(t, view.User)
	require.False(t, view.NeedsOnboarding)
}

// Ответ регистрации без пользователя и без токенов: ни паники,
// ни активации сессии.
func TestRegister_WithoutUserSnapshot(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	e.api.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, nil)

	view, err := e.sess.Register(context.Background(), client.RegisterRequest{
		Email:    "new@example.com",
		Username: "new",
		Password: "Abcdef1!",
	})
	require.NoError(t, err)
	require.False(t, view.IsAuthenticated)
	require.Nil(t, view.User)
}

func TestRegister_WithoutTokens_NotActivated(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	user := activeUser()
	user.AccountState = models.AccountInvited

	// Хранилище пусто: бэкенд не выдал токены при регистрации.
	e.api.EXPECT().Register(gomock.Any(), gomock.Any()).Return(user, nil)

	view, err := e.sess.Register(context.Background(), client.RegisterRequest{
		Email:    "new@example.com",
		Username: "new",
		Password: "Abcdef1!",
	})
	require.NoError(t, err)
	require.False(t, view.IsAuthenticated)
}

func TestCompleteOnboarding_RefreshesSnapshot(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	registered := activeUser()
	registered.AccountState = models.AccountRegistered
	e.st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, registered)

	e.api.EXPECT().AccessTokenValid(gomock.Any()).Return(true)
	e.api.EXPECT().Profile(gomock.Any()).Return(registered, nil)

	view, err := e.sess.Init(context.Background())
	require.NoError(t, err)
	require.True(t, view.NeedsOnboarding)

	activated := *registered
	activated.AccountState = models.AccountActive
	e.api.EXPECT().CompleteOnboarding(gomock.Any()).Return(&activated, nil)

	view, err = e.sess.CompleteOnboarding(context.Background())
	require.NoError(t, err)
	require.True(t, view.IsAuthenticated)
	require.False(t, view.NeedsOnboarding)
}

// Logout идемпотентен и безопасен из любого состояния.
func TestLogout_Idempotent(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	user := activeUser()
	e.st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, user)

	e.api.EXPECT().AccessTokenValid(gomock.Any()).Return(true)
	e.api.EXPECT().Profile(gomock.Any()).Return(user, nil)

	_, err := e.sess.Init(context.Background())
	require.NoError(t, err)

	e.api.EXPECT().Logout(gomock.Any()).Times(2)

	view := e.sess.Logout(context.Background())
	require.False(t, view.IsAuthenticated)

	// Повторный Logout без активной сессии — no-op без паники.
	view = e.sess.Logout(context.Background())
	require.False(t, view.IsAuthenticated)
	require.Equal(t, 2, e.st.cleared())
}

// Сигнал принудительного разлогина от клиента завершает сессию локально,
// без сетевого отзыва.
func TestForcedLogoutSignal_ClearsSession(t *testing.T) {
	t.Parallel()

	e := newEnv(t, time.Hour, 168*time.Hour)

	user := activeUser()
	e.st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, user)

	e.api.EXPECT().AccessTokenValid(gomock.Any()).Return(true)
	e.api.EXPECT().Profile(gomock.Any()).Return(user, nil)

	view, err := e.sess.Init(context.Background())
	require.NoError(t, err)
	require.True(t, view.IsAuthenticated)

	e.sess.forcedLogout <- struct{}{}

	require.Eventually(t, func() bool {
		return !e.sess.View().IsAuthenticated
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, 1, e.st.cleared())
}

// Переход офлайн → онлайн при активной сессии: ровно одна
// пересинхронизация профиля.
func TestReconnect_SingleProfileSync(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 25*time.Millisecond, 168*time.Hour)
	e.reachable.Store(false)

	user := activeUser()
	e.st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, user)

	view, err := e.sess.Init(context.Background())
	require.NoError(t, err)
	require.True(t, view.OfflineMode)

	synced := *user
	synced.Username = "user-synced"
	e.api.EXPECT().Profile(gomock.Any()).Return(&synced, nil).Times(1)

	e.reachable.Store(true)

	require.Eventually(t, func() bool {
		v := e.sess.View()
		return v.IsAuthenticated && !v.OfflineMode && v.User.Username == "user-synced"
	}, 2*time.Second, 10*time.Millisecond)

	// Ещё несколько тиков: повторных загрузок профиля нет (Times(1)).
	time.Sleep(100 * time.Millisecond)
}

// Истечение grace-окна при активной офлайн-сессии: фоновый опрос
// завершает сессию принудительно.
func TestGraceExpiry_ForcesLogoutFromPoll(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 20*time.Millisecond, 150*time.Millisecond)
	e.reachable.Store(false)

	user := activeUser()
	e.st.set(models.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, user)

	view, err := e.sess.Init(context.Background())
	require.NoError(t, err)
	require.True(t, view.IsAuthenticated)
	require.True(t, view.OfflineMode)

	require.Eventually(t, func() bool {
		return !e.sess.View().IsAuthenticated
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, 1, e.st.cleared())
}
