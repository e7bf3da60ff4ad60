// session реализует оркестратор жизненного цикла клиентской сессии:
// стартовую сверку состояния, вход/регистрацию/выход, фоновый опрос
// связности и обработку принудительного разлогина.
//
// Оркестратор — единственный владелец фоновых задач сессии: проактивного
// рефреша и опроса связности. Задачи запускаются при появлении активной
// сессии и останавливаются при любом её завершении.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"platform-client/internal/client"
	"platform-client/internal/config"
	"platform-client/internal/models"
	"platform-client/internal/offline"
	"platform-client/internal/pkg/log"
	"platform-client/internal/store"
)

// API — срез клиентского API, который потребляет оркестратор.
// Реализуется *client.Client.
type API interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, req client.RegisterRequest) (*models.User, error)
	Profile(ctx context.Context) (*models.User, error)
	CompleteOnboarding(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context)
	EnsureFreshToken(ctx context.Context) (string, error)
	AccessTokenValid(ctx context.Context) bool
	StartAutoRefresh(ctx context.Context) func()
	SetForcedLogoutSignal(ch chan<- struct{})
}

// Session — оркестратор сессии.
type Session struct {
	cfg     *config.Config
	api     API
	store   store.Store
	offline offline.Service

	mu            sync.Mutex
	initialized   bool
	authenticated bool
	user          *models.User
	offlineMode   bool

	// forcedLogout принадлежит оркестратору; клиент пишет в него неблокирующе.
	forcedLogout chan struct{}

	cancelWatchers context.CancelFunc
	stopRefresh    func()
}

// New создаёт оркестратор и регистрирует у клиента канал принудительного
// разлогина. Фоновые задачи до первого Init/Login не запускаются.
func New(cfg *config.Config, api API, st store.Store, off offline.Service) *Session {
	s := &Session{
		cfg:          cfg,
		api:          api,
		store:        st,
		offline:      off,
		forcedLogout: make(chan struct{}, 1),
	}

	api.SetForcedLogoutSignal(s.forcedLogout)

	return s
}

// Init выполняет стартовую сверку состояния сессии. Повторные вызовы
// возвращают текущее представление без побочных эффектов.
//
// Порядок сверки:
//  1. учётных данных нет → неаутентифицирован, ни одного сетевого вызова;
//  2. данные есть, проба связности не прошла → офлайн-сессия на кэше,
//     если grace-окно живо, иначе принудительный разлогин;
//  3. проба прошла, access-токен локально истёк → рефреш, при отказе —
//     принудительный разлогин;
//  4. загрузка авторитетного профиля и переход в онлайн.
func (s *Session) Init(ctx context.Context) (models.SessionView, error) {
	const op = "session.Init"

	lg := log.From(ctx)

	s.mu.Lock()
	if s.initialized {
		v := s.viewLocked()
		s.mu.Unlock()
		return v, nil
	}
	s.initialized = true
	s.mu.Unlock()

	_, cachedUser, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return models.SessionView{}, fmt.Errorf("%s: %w", op, err)
		}

		lg.Debug("init_no_credentials", slog.String("op", op))

		return s.View(), nil
	}

	if !s.offline.CheckConnectivity(ctx) {
		if cachedUser != nil && s.offline.IsWithinGracePeriod() {
			lg.Info("init_offline_grace",
				slog.String("op", op),
				slog.Int("days_remaining", s.offline.DaysRemaining()),
			)
			s.enterOffline(cachedUser)
			s.startWatchers()

			return s.View(), nil
		}

		lg.Warn("init_offline_expired", slog.String("op", op))
		s.clearLocal(ctx)

		return s.View(), nil
	}

	if !s.api.AccessTokenValid(ctx) {
		if _, err := s.api.EnsureFreshToken(ctx); err != nil {
			// Связность могла пропасть между пробой и рефрешем:
			// в пределах grace-окна деградируем в офлайн на кэше.
			if s.fallbackOffline(err, cachedUser) {
				s.startWatchers()
				return s.View(), nil
			}

			lg.Warn("init_refresh_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			s.clearLocal(ctx)

			return s.View(), nil
		}
	}

	user, err := s.api.Profile(ctx)
	if err != nil {
		if s.fallbackOffline(err, cachedUser) {
			s.startWatchers()
			return s.View(), nil
		}

		lg.Warn("init_profile_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		s.clearLocal(ctx)

		return s.View(), nil
	}

	s.persistSnapshot(ctx, user)

	s.mu.Lock()
	s.authenticated = true
	s.user = user
	s.offlineMode = false
	s.mu.Unlock()

	s.startWatchers()

	lg.Info("init_online", slog.String("op", op))

	return s.View(), nil
}

// Login выполняет вход и активирует сессию.
func (s *Session) Login(ctx context.Context, email, password string) (models.SessionView, error) {
	const op = "session.Login"

	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return s.View(), fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.initialized = true
	s.authenticated = true
	s.user = user
	s.offlineMode = false
	s.mu.Unlock()

	s.startWatchers()

	log.From(ctx).Info("session_login",
		slog.String("op", op),
		slog.String("user_id", userID(user)),
	)

	return s.View(), nil
}

// Register регистрирует пользователя. Сессия активируется только если
// бэкенд сразу выдал пару токенов; иначе пользователю предстоит отдельный
// шаг подтверждения и последующий Login.
func (s *Session) Register(ctx context.Context, req client.RegisterRequest) (models.SessionView, error) {
	const op = "session.Register"

	user, err := s.api.Register(ctx, req)
	if err != nil {
		return s.View(), fmt.Errorf("%s: %w", op, err)
	}

	pair, _, loadErr := s.store.Load(ctx)
	if loadErr == nil && pair.Valid() {
		s.mu.Lock()
		s.initialized = true
		s.authenticated = true
		s.user = user
		s.offlineMode = false
		s.mu.Unlock()

		s.startWatchers()
	}

	log.From(ctx).Info("session_register",
		slog.String("op", op),
		slog.String("user_id", userID(user)),
	)

	return s.View(), nil
}

// CompleteOnboarding завершает онбординг и обновляет снапшот пользователя.
func (s *Session) CompleteOnboarding(ctx context.Context) (models.SessionView, error) {
	const op = "session.CompleteOnboarding"

	user, err := s.api.CompleteOnboarding(ctx)
	if err != nil {
		return s.View(), fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return s.View(), nil
}

// Logout завершает сессию: best-effort отзыв refresh-токена на бэкенде,
// затем безусловная локальная очистка. Идемпотентен и безопасен из
// любого состояния, включая отсутствие сессии.
func (s *Session) Logout(ctx context.Context) models.SessionView {
	const op = "session.Logout"

	// Отзыв не предпринимается в офлайне: очередь офлайн-операций — не
	// место для logout, а локальная очистка от бэкенда не зависит.
	if !s.offline.IsOffline() {
		s.api.Logout(ctx)
	}

	s.clearLocal(ctx)

	log.From(ctx).Info("session_logout", slog.String("op", op))

	return s.View()
}

// View возвращает текущее представление сессии.
func (s *Session) View() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewLocked()
}

// Close останавливает фоновые задачи, не трогая учётные данные.
// Используется при завершении процесса: сессия переживает перезапуск.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopWatchersLocked()
}

func (s *Session) viewLocked() models.SessionView {
	days := 0
	if s.offlineMode {
		days = s.offline.DaysRemaining()
	}

	return models.SessionView{
		User:            s.user,
		IsAuthenticated: s.authenticated,
		NeedsOnboarding: s.authenticated && s.user.NeedsOnboarding(),
		OfflineMode:     s.offlineMode,
		DaysRemaining:   days,
	}
}

// userID — идентификатор пользователя для логов. Бэкенд может вернуть
// успешный ответ с токенами, но без объекта пользователя; сессия при этом
// живёт без снапшота до ближайшей синхронизации профиля.
func userID(u *models.User) string {
	if u == nil {
		return "unknown"
	}

	return u.ID.String()
}

// enterOffline активирует офлайн-сессию на кэшированном снапшоте.
func (s *Session) enterOffline(cached *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = true
	s.user = cached
	s.offlineMode = true
}

// fallbackOffline — офлайн-деградация после сетевого отказа: применима,
// когда отказ нормализован как офлайн в пределах grace-окна и есть кэш.
func (s *Session) fallbackOffline(err error, cached *models.User) bool {
	var offErr *client.OfflineError
	if !errors.As(err, &offErr) || !offErr.GracePeriod || cached == nil {
		return false
	}

	s.enterOffline(cached)

	return true
}

// clearLocal — локальное завершение сессии: хранилище, машина связности,
// фоновые задачи, состояние. Сетевых вызовов не делает.
func (s *Session) clearLocal(ctx context.Context) {
	const op = "session.clearLocal"

	if err := s.store.Clear(ctx); err != nil {
		log.From(ctx).Error("credentials_clear_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}

	s.offline.ClearState()

	s.mu.Lock()
	s.stopWatchersLocked()
	s.authenticated = false
	s.user = nil
	s.offlineMode = false
	s.mu.Unlock()

	// Снимаем возможный необработанный сигнал, чтобы он не завершил
	// следующую сессию.
	select {
	case <-s.forcedLogout:
	default:
	}
}

// persistSnapshot обновляет кэшированный снапшот при текущей паре токенов.
func (s *Session) persistSnapshot(ctx context.Context, user *models.User) {
	const op = "session.persistSnapshot"

	pair, _, err := s.store.Load(ctx)
	if err != nil {
		return
	}

	if err := s.store.Save(ctx, pair, user); err != nil {
		log.From(ctx).Warn("snapshot_persist_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
}

// startWatchers запускает фоновые задачи активной сессии: проактивный
// рефреш, опрос связности и слушатель принудительного разлогина.
// Повторный вызов при уже запущенных задачах — no-op.
func (s *Session) startWatchers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelWatchers != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelWatchers = cancel
	s.stopRefresh = s.api.StartAutoRefresh(ctx)

	go s.watchConnectivity(ctx)
	go s.watchForcedLogout(ctx)
}

// stopWatchersLocked останавливает фоновые задачи; вызывается под s.mu.
func (s *Session) stopWatchersLocked() {
	if s.cancelWatchers != nil {
		s.cancelWatchers()
		s.cancelWatchers = nil
	}

	if s.stopRefresh != nil {
		s.stopRefresh()
		s.stopRefresh = nil
	}
}

// watchConnectivity — периодический опрос связности: пересчёт остатка
// grace-окна, принудительный разлогин по его истечении и однократная
// синхронизация профиля при переходе офлайн → онлайн.
func (s *Session) watchConnectivity(ctx context.Context) {
	const op = "session.watchConnectivity"

	t := time.NewTicker(s.cfg.Offline.PollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		wasOffline := s.offline.IsOffline()
		reachable := s.offline.CheckConnectivity(ctx)

		s.mu.Lock()
		active := s.authenticated
		s.mu.Unlock()

		if !active {
			continue
		}

		if reachable {
			if wasOffline {
				// Ровно одна пересинхронизация профиля на восстановление.
				s.syncProfile(ctx)
				log.From(ctx).Info("reconnected", slog.String("op", op))
			}

			s.mu.Lock()
			s.offlineMode = false
			s.mu.Unlock()

			continue
		}

		if s.offline.ShouldForceLogout() {
			log.From(ctx).Warn("grace_period_expired", slog.String("op", op))
			s.clearLocal(ctx)

			continue
		}

		s.mu.Lock()
		s.offlineMode = true
		s.mu.Unlock()
	}
}

// watchForcedLogout обрабатывает сигнал клиента о невосстановимом отказе
// рефреша. Локальная очистка без сетевых вызовов: refresh-токен уже
// недействителен, отзывать нечего.
func (s *Session) watchForcedLogout(ctx context.Context) {
	const op = "session.watchForcedLogout"

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.forcedLogout:
			log.From(ctx).Warn("forced_logout", slog.String("op", op))
			s.clearLocal(ctx)
		}
	}
}

// syncProfile — однократная загрузка авторитетного профиля после
// восстановления связности; отказ не фатален.
func (s *Session) syncProfile(ctx context.Context) {
	const op = "session.syncProfile"

	user, err := s.api.Profile(ctx)
	if err != nil {
		log.From(ctx).Warn("reconnect_sync_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return
	}

	s.persistSnapshot(ctx, user)

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}
