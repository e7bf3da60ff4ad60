// offline реализует машину состояний связности и grace-периода клиента.
//
// Состояния: Online, Offline-Within-Grace, Offline-Expired. Первый сетевой
// сбой эпизода запускает часы grace-периода; повторные сбои того же эпизода
// их не сдвигают. Подтверждённое восстановление связности (успешная проба
// или успешный аутентифицированный вызов) сбрасывает эпизод целиком.
//
// Мутирующие операции, выполненные в офлайне, складываются в FIFO-очередь
// для последующего реплея; сам реплей находится вне ответственности клиента.
package offline

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"platform-client/internal/pkg/log"
)

// State — снимок состояния связности для внешнего кода.
//
// Инвариант: GraceExpiry != nil тогда и только тогда, когда IsOffline == true.
type State struct {
	IsOffline   bool
	GraceExpiry *time.Time
}

// Operation — мутирующий вызов, отложенный на время офлайна.
type Operation struct {
	ID       uuid.UUID
	Method   string
	Path     string
	Body     []byte
	QueuedAt time.Time
}

// Prober проверяет достижимость бэкенда. true — бэкенд отвечает.
type Prober func(ctx context.Context) bool

// Service — контракт машины связности, который потребляет API-клиент
// и оркестратор сессии.
type Service interface {
	// CheckConnectivity выполняет пробу достижимости и применяет переход.
	CheckConnectivity(ctx context.Context) bool
	// IsOffline сообщает, находится ли клиент в офлайн-эпизоде.
	IsOffline() bool
	// IsWithinGracePeriod — true, пока текущее время строго меньше конца grace-окна.
	IsWithinGracePeriod() bool
	// DaysRemaining — оставшиеся дни grace-периода (0, если онлайн или окно истекло).
	DaysRemaining() int
	// GetState возвращает снимок состояния.
	GetState() State
	// HandleNetworkError фиксирует сетевой сбой; первый сбой эпизода
	// запускает часы grace-периода.
	HandleNetworkError()
	// MarkAsOnline фиксирует подтверждённое восстановление связности.
	MarkAsOnline()
	// ClearState полностью сбрасывает машину (включая очередь операций).
	ClearState()
	// ShouldForceLogout — true, когда офлайн-эпизод пережил grace-окно.
	ShouldForceLogout() bool
	// QueueOperation добавляет отложенную операцию в конец очереди.
	QueueOperation(op Operation)
	// PendingOperations возвращает копию очереди в порядке добавления.
	PendingOperations() []Operation
}

// Manager — реализация Service.
type Manager struct {
	mu sync.Mutex

	grace  time.Duration
	prober Prober
	now    func() time.Time

	offline     bool
	graceExpiry time.Time
	queue       []Operation
}

var _ Service = (*Manager)(nil)

// NewManager создаёт машину связности с заданным grace-окном и пробой.
func NewManager(grace time.Duration, prober Prober) *Manager {
	return &Manager{
		grace:  grace,
		prober: prober,
		now:    time.Now,
	}
}

// NewHTTPProber возвращает пробу достижимости: GET {baseURL}{probePath}
// с собственным коротким таймаутом. Достижимым считается ответ со статусом
// ниже 500: ошибка транспорта («ответа нет») и 5xx от шлюза равнозначны
// недоступному бэкенду.
func NewHTTPProber(baseURL, probePath string, timeout time.Duration) Prober {
	httpClient := &http.Client{Timeout: timeout}
	probeURL := strings.TrimRight(baseURL, "/") + probePath

	return func(ctx context.Context) bool {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
		if err != nil {
			return false
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()

		return resp.StatusCode < http.StatusInternalServerError
	}
}

// CheckConnectivity выполняет пробу и применяет переход состояния.
func (m *Manager) CheckConnectivity(ctx context.Context) bool {
	const op = "offline.Manager.CheckConnectivity"

	reachable := m.prober(ctx)

	if reachable {
		m.MarkAsOnline()
		return true
	}

	lg := log.From(ctx)
	m.mu.Lock()
	first := !m.offline
	m.handleNetworkErrorLocked()
	expiry := m.graceExpiry
	m.mu.Unlock()

	if first {
		lg.Warn("offline_episode_started",
			slog.String("op", op),
			slog.Time("grace_expiry", expiry),
		)
	}

	return false
}

// IsOffline сообщает, идёт ли офлайн-эпизод.
func (m *Manager) IsOffline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.offline
}

// IsWithinGracePeriod — true строго до конца grace-окна; в момент now == expiry
// окно считается истёкшим.
func (m *Manager) IsWithinGracePeriod() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.offline {
		return false
	}

	return m.now().Before(m.graceExpiry)
}

// DaysRemaining — оставшиеся дни grace-окна, округлённые вверх, не меньше 0.
func (m *Manager) DaysRemaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.offline {
		return 0
	}

	left := m.graceExpiry.Sub(m.now())
	if left <= 0 {
		return 0
	}

	return int(math.Ceil(left.Hours() / 24))
}

// GetState возвращает снимок состояния.
func (m *Manager) GetState() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.offline {
		return State{}
	}

	expiry := m.graceExpiry
	return State{IsOffline: true, GraceExpiry: &expiry}
}

// HandleNetworkError фиксирует сетевой сбой.
func (m *Manager) HandleNetworkError() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handleNetworkErrorLocked()
}

// handleNetworkErrorLocked: часы grace-периода ставятся один раз на эпизод.
func (m *Manager) handleNetworkErrorLocked() {
	if m.offline {
		return
	}

	m.offline = true
	m.graceExpiry = m.now().Add(m.grace)
}

// MarkAsOnline фиксирует восстановление связности и завершает эпизод.
func (m *Manager) MarkAsOnline() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.offline = false
	m.graceExpiry = time.Time{}
}

// ClearState сбрасывает машину и очередь (используется при logout).
func (m *Manager) ClearState() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.offline = false
	m.graceExpiry = time.Time{}
	m.queue = nil
}

// ShouldForceLogout — офлайн-эпизод пережил grace-окно.
func (m *Manager) ShouldForceLogout() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.offline && !m.now().Before(m.graceExpiry)
}

// QueueOperation добавляет операцию в конец очереди.
func (m *Manager) QueueOperation(op Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if op.ID == uuid.Nil {
		op.ID = uuid.New()
	}
	if op.QueuedAt.IsZero() {
		op.QueuedAt = m.now()
	}

	m.queue = append(m.queue, op)
}

// PendingOperations возвращает копию очереди в порядке добавления.
func (m *Manager) PendingOperations() []Operation {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Operation, len(m.queue))
	copy(out, m.queue)

	return out
}
