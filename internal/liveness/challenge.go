package liveness

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shenikar/attendance_verification_system/internal/classifier"
	"github.com/shenikar/attendance_verification_system/internal/models"
)

// Типы челленджей из фиксированного каталога
const (
	ChallengeSmile         = "smile"
	ChallengeTurnHeadLeft  = "turn_head_left"
	ChallengeTurnHeadRight = "turn_head_right"
	ChallengeBlinkTwice    = "blink_twice"
)

// Challenge - выданное пользователю задание с лимитом времени
type Challenge struct {
	Type     string        `json:"type"`
	Prompt   string        `json:"prompt"`
	Budget   time.Duration `json:"budget"`
	IssuedAt time.Time     `json:"issued_at"`
}

// ChallengeResult - результат проверки выполнения задания
type ChallengeResult struct {
	Passed     bool
	Confidence float64
	Detail     string
}

// ChallengeProtocol выдает случайное задание и проверяет его выполнение по
// записанным кадрам через те же внешние классификаторы
type ChallengeProtocol struct {
	svc        classifier.Service
	threshold  float64
	budget     time.Duration
	sessionCfg Config
	rng        *rand.Rand
}

func NewChallengeProtocol(svc classifier.Service, threshold float64, budget time.Duration, sessionCfg Config) *ChallengeProtocol {
	return &ChallengeProtocol{
		svc:        svc,
		threshold:  threshold,
		budget:     budget,
		sessionCfg: sessionCfg,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var challengePrompts = map[string]string{
	ChallengeSmile:         "Please smile naturally",
	ChallengeTurnHeadLeft:  "Please turn your head to the left",
	ChallengeTurnHeadRight: "Please turn your head to the right",
	ChallengeBlinkTwice:    "Please blink twice",
}

// Issue выдает задание, выбранное равномерно случайно из каталога
func (p *ChallengeProtocol) Issue() Challenge {
	types := []string{ChallengeSmile, ChallengeTurnHeadLeft, ChallengeTurnHeadRight, ChallengeBlinkTwice}
	ct := types[p.rng.Intn(len(types))]
	return Challenge{
		Type:     ct,
		Prompt:   challengePrompts[ct],
		Budget:   p.budget,
		IssuedAt: time.Now().UTC(),
	}
}

// Verify проверяет выполнение задания по кадрам. Недостаток кадров на
// отведенную длительность трактуется как невыполнение, а не как системная
// ошибка
func (p *ChallengeProtocol) Verify(ctx context.Context, challengeType string, frames []models.Frame) (ChallengeResult, error) {
	if len(frames) < 2 {
		return ChallengeResult{Detail: "challenge timeout: not enough frames recorded"}, nil
	}

	switch challengeType {
	case ChallengeSmile:
		return p.verifySmile(ctx, frames)
	case ChallengeTurnHeadLeft:
		return p.verifyHeadTurn(ctx, frames, -1)
	case ChallengeTurnHeadRight:
		return p.verifyHeadTurn(ctx, frames, 1)
	case ChallengeBlinkTwice:
		return p.verifyBlinks(ctx, frames, 2)
	default:
		return ChallengeResult{}, fmt.Errorf("unknown challenge type %q", challengeType)
	}
}

// verifySmile ищет кадр с уверенной эмоцией happy
func (p *ChallengeProtocol) verifySmile(ctx context.Context, frames []models.Frame) (ChallengeResult, error) {
	best := 0.0
	for _, frame := range frames {
		emotion, err := p.svc.ClassifyEmotion(ctx, frame.Data)
		if err != nil {
			continue
		}
		if emotion.Label == "happy" && emotion.Confidence > best {
			best = emotion.Confidence
		}
	}

	if best >= p.threshold {
		return ChallengeResult{Passed: true, Confidence: best}, nil
	}
	return ChallengeResult{Confidence: best, Detail: "smile not detected with sufficient confidence"}, nil
}

// verifyHeadTurn сравнивает горизонтальное смещение центра глаз между первым
// и последним кадром с ориентирами. Смещение нормируется на межглазное
// расстояние, direction: -1 влево, 1 вправо
func (p *ChallengeProtocol) verifyHeadTurn(ctx context.Context, frames []models.Frame, direction float64) (ChallengeResult, error) {
	first, err := p.firstLandmarks(ctx, frames, false)
	if err != nil {
		return ChallengeResult{Detail: "no usable face in challenge frames"}, nil
	}
	last, err := p.firstLandmarks(ctx, frames, true)
	if err != nil {
		return ChallengeResult{Detail: "no usable face in challenge frames"}, nil
	}

	startCenter, startSpan := eyeCenterAndSpan(first)
	endCenter, _ := eyeCenterAndSpan(last)
	if startSpan == 0 {
		return ChallengeResult{Detail: "degenerate landmarks"}, nil
	}

	shift := (endCenter - startCenter) / startSpan * direction
	confidence := math.Min(shift/0.5, 1.0)

	if confidence >= p.threshold {
		return ChallengeResult{Passed: true, Confidence: confidence}, nil
	}
	return ChallengeResult{Confidence: math.Max(confidence, 0), Detail: "head turn not detected"}, nil
}

// verifyBlinks прогоняет мини-сессию моргания по кадрам задания
func (p *ChallengeProtocol) verifyBlinks(ctx context.Context, frames []models.Frame, required int) (ChallengeResult, error) {
	session := NewSession(Config{
		EARThreshold:      p.sessionCfg.EARThreshold,
		ConsecutiveFrames: p.sessionCfg.ConsecutiveFrames,
		Window:            p.budget,
		MinBlinks:         required,
		MaxBlinks:         p.sessionCfg.MaxBlinks,
		MinFrames:         2,
	})
	session.Start(frames[0].CapturedAt)

	for _, frame := range frames {
		landmarks, err := p.svc.ClassifyEyeState(ctx, frame.Data)
		if err != nil {
			continue
		}
		session.Observe(Observation{CapturedAt: frame.CapturedAt, Landmarks: *landmarks})
	}

	res := session.Evaluate(false)
	if res.Verdict == VerdictLive {
		return ChallengeResult{Passed: true, Confidence: 1.0}, nil
	}
	return ChallengeResult{Detail: fmt.Sprintf("expected %d blinks, counted %d", required, res.BlinkCount)}, nil
}

// firstLandmarks возвращает первые пригодные ориентиры с начала или с конца
// последовательности кадров
func (p *ChallengeProtocol) firstLandmarks(ctx context.Context, frames []models.Frame, fromEnd bool) (*classifier.EyeLandmarks, error) {
	for i := range frames {
		idx := i
		if fromEnd {
			idx = len(frames) - 1 - i
		}
		landmarks, err := p.svc.ClassifyEyeState(ctx, frames[idx].Data)
		if err == nil {
			return landmarks, nil
		}
	}
	return nil, classifier.ErrExtractionFailed
}

func eyeCenterAndSpan(lm *classifier.EyeLandmarks) (center, span float64) {
	left := (lm.Left[0].X + lm.Left[3].X) / 2
	right := (lm.Right[0].X + lm.Right[3].X) / 2
	return (left + right) / 2, math.Abs(right - left)
}
