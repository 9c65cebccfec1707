// Package scan содержит контракт взаимодействия с внешней службой
// сканирования: жизненный цикл одноразовой сессии декодирования и
// маршрутизацию распознанного кода в реестр или журнал.
package scan

import (
	"context"
	"errors"
	"sync"
)

// Decoder описывает внешнюю службу захвата и декодирования (например,
// камерный сканер). Acquire может завершиться ошибкой, если ресурс захвата
// недоступен (нет устройства, нет разрешения).
type Decoder interface {
	Acquire(ctx context.Context) (Capture, error)
}

// Capture представляет захваченный ресурс декодирования. Decode блокируется
// до первого распознанного кода либо отмены контекста. Release обязан быть
// вызван ровно один раз за активацию.
type Capture interface {
	Decode(ctx context.Context) (string, error)
	Release() error
}

// Outcome — исход одной активации сессии.
type Outcome string

const (
	// OutcomeDecoded — получен ровно один распознанный код.
	OutcomeDecoded Outcome = "decoded"
	// OutcomeFailed — ресурс захвата недоступен или декодирование сорвалось.
	OutcomeFailed Outcome = "failed"
	// OutcomeCancelled — активация остановлена до получения кода.
	OutcomeCancelled Outcome = "cancelled"
)

// Event — терминальное событие активации. За одну активацию доставляется
// ровно одно событие.
type Event struct {
	Outcome Outcome
	Code    string
	Err     error
}

type sessionState int

const (
	stateIdle sessionState = iota
	stateAcquiring
	stateActive
)

// Session управляет жизненным циклом одной активации декодера:
// Idle → Acquiring → Active → (Decoded | Failed | Cancelled) → Idle.
// Start при уже активной сессии — no-op, Stop при неактивной — no-op.
// Ресурс захвата освобождается ровно один раз на любом терминальном пути,
// в том числе когда Stop пришёл во время ещё не завершённого Acquire.
type Session struct {
	mu      sync.Mutex
	decoder Decoder
	events  chan Event

	state   sessionState
	stopReq bool
	cancel  context.CancelFunc
}

// NewSession создаёт сессию поверх указанного декодера.
func NewSession(decoder Decoder) *Session {
	return &Session{
		decoder: decoder,
		events:  make(chan Event, 1),
	}
}

// Events возвращает канал терминальных событий активаций.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Start запускает активацию. Повторный Start до завершения текущей
// активации — no-op.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateIdle {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.state = stateAcquiring
	s.stopReq = false
	s.cancel = cancel

	go s.run(runCtx)
}

// Stop запрашивает остановку текущей активации. Stop при неактивной
// сессии — no-op. Если захват ещё не завершился, ресурс всё равно будет
// освобождён после его завершения.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateIdle {
		return
	}

	s.stopReq = true
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Session) run(ctx context.Context) {
	capture, err := s.decoder.Acquire(ctx)
	if err != nil {
		s.finish(s.terminalFor(err))
		return
	}

	s.mu.Lock()
	if s.stopReq {
		s.mu.Unlock()
		// Stop успел раньше, чем завершился захват: освобождаем ресурс
		// и завершаем активацию без события декодирования.
		capture.Release()
		s.finish(Event{Outcome: OutcomeCancelled})
		return
	}
	s.state = stateActive
	s.mu.Unlock()

	code, err := capture.Decode(ctx)
	// Ресурс освобождается до доставки события: декодер обязан остановиться
	// сразу после первого распознанного кода.
	capture.Release()

	if err != nil {
		s.finish(s.terminalFor(err))
		return
	}
	s.finish(Event{Outcome: OutcomeDecoded, Code: code})
}

// terminalFor выбирает терминальный исход для ошибки захвата или
// декодирования: запрошенная остановка и отмена контекста — Cancelled,
// всё остальное — Failed.
func (s *Session) terminalFor(err error) Event {
	s.mu.Lock()
	stopped := s.stopReq
	s.mu.Unlock()

	if stopped || errors.Is(err, context.Canceled) {
		return Event{Outcome: OutcomeCancelled}
	}
	return Event{Outcome: OutcomeFailed, Err: err}
}

func (s *Session) finish(ev Event) {
	s.mu.Lock()
	s.state = stateIdle
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.events <- ev
}
