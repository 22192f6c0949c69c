package liveness

import (
	"math"
	"time"

	"github.com/shenikar/attendance_verification_system/internal/classifier"
)

// State - состояние сессии проверки живости
type State string

const (
	StateIdle       State = "idle"
	StateCollecting State = "collecting"
	StateEvaluating State = "evaluating"
	StateDone       State = "done"
)

// Verdict - итог сессии. INSUFFICIENT отличается от SPOOF: попытку можно
// повторить без фиксации мошенничества
type Verdict string

const (
	VerdictLive         Verdict = "live"
	VerdictSpoof        Verdict = "spoof"
	VerdictInsufficient Verdict = "insufficient"
)

// Config - пороги детектора моргания
type Config struct {
	// EARThreshold - порог Eye Aspect Ratio, ниже которого глаз считается закрытым
	EARThreshold float64
	// ConsecutiveFrames - минимум подряд идущих "закрытых" кадров для засчитывания моргания
	ConsecutiveFrames int
	// Window - фиксированное окно сбора кадров. Окно не продлевается при
	// достижении нужного числа морганий, чтобы ограничить время повтора атаки
	Window time.Duration
	// MinBlinks / MaxBlinks - допустимый диапазон морганий за окно
	MinBlinks int
	MaxBlinks int
	// MinFrames - минимум пригодных кадров для вынесения вердикта
	MinFrames int
}

// Observation - измерения одного кадра: ориентиры обоих глаз от внешнего
// классификатора и время съемки
type Observation struct {
	CapturedAt time.Time
	Landmarks  classifier.EyeLandmarks
}

// Result - итог оценки сессии
type Result struct {
	Verdict    Verdict
	BlinkCount int
	FrameCount int
	Detail     string
}

// Session - конечный автомат IDLE -> COLLECTING -> EVALUATING -> вердикт.
// Перезапускается на каждую попытку и не хранит состояния между попытками.
// Конец окна определяется по временным меткам кадров, а не по настенным
// часам, поэтому автомат детерминирован
type Session struct {
	cfg Config

	state        State
	startedAt    time.Time
	frameCount   int
	blinkCount   int
	closedStreak int
}

func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg, state: StateIdle}
}

func (s *Session) State() State {
	return s.state
}

// Start переводит сессию в режим сбора кадров
func (s *Session) Start(at time.Time) {
	s.state = StateCollecting
	s.startedAt = at
	s.frameCount = 0
	s.blinkCount = 0
	s.closedStreak = 0
}

// Observe учитывает один кадр. Кадры за пределами окна игнорируются и
// переводят сессию к оценке. Возвращает false, когда окно уже закрыто
func (s *Session) Observe(obs Observation) bool {
	if s.state != StateCollecting {
		return false
	}
	if obs.CapturedAt.Sub(s.startedAt) > s.cfg.Window {
		s.state = StateEvaluating
		return false
	}

	s.frameCount++

	ear := (EyeAspectRatio(obs.Landmarks.Left) + EyeAspectRatio(obs.Landmarks.Right)) / 2

	if ear < s.cfg.EARThreshold {
		s.closedStreak++
		return true
	}

	// Глаза открылись: моргание засчитывается только после серии из
	// ConsecutiveFrames закрытых кадров - гистерезис отсекает одиночный
	// шум и не дает посчитать одно моргание дважды
	if s.closedStreak >= s.cfg.ConsecutiveFrames {
		s.blinkCount++
	}
	s.closedStreak = 0
	return true
}

// Evaluate выносит вердикт по собранным кадрам и вердикту текстурного
// классификатора. Вызывается после окончания окна сбора
func (s *Session) Evaluate(textureSpoof bool) Result {
	s.state = StateDone

	res := Result{
		BlinkCount: s.blinkCount,
		FrameCount: s.frameCount,
	}

	if s.frameCount < s.cfg.MinFrames {
		res.Verdict = VerdictInsufficient
		res.Detail = "not enough usable frames collected"
		return res
	}

	if textureSpoof {
		res.Verdict = VerdictSpoof
		res.Detail = "texture classifier flagged photo/screen"
		return res
	}

	if s.blinkCount == 0 {
		res.Verdict = VerdictSpoof
		res.Detail = "no blinks detected, possible photo"
		return res
	}

	if s.blinkCount < s.cfg.MinBlinks || s.blinkCount > s.cfg.MaxBlinks {
		res.Verdict = VerdictSpoof
		res.Detail = "blink count outside expected range"
		return res
	}

	res.Verdict = VerdictLive
	return res
}

// Abort прерывает сессию по инициативе вызывающего. Прерванная сессия
// всегда дает INSUFFICIENT, никогда LIVE
func (s *Session) Abort() Result {
	s.state = StateDone
	return Result{
		Verdict:    VerdictInsufficient,
		BlinkCount: s.blinkCount,
		FrameCount: s.frameCount,
		Detail:     "session aborted by caller",
	}
}

// EyeAspectRatio вычисляет EAR по шести ориентирам глаза:
// (|p2-p6| + |p3-p5|) / (2*|p1-p4|)
func EyeAspectRatio(eye [6]classifier.Point) float64 {
	a := euclidean(eye[1], eye[5])
	b := euclidean(eye[2], eye[4])
	c := euclidean(eye[0], eye[3])
	if c == 0 {
		return 0
	}
	return (a + b) / (2 * c)
}

func euclidean(p1, p2 classifier.Point) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}
