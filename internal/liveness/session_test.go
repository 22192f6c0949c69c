package liveness

import (
	"testing"
	"time"

	"github.com/shenikar/attendance_verification_system/internal/classifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionConfig() Config {
	return Config{
		EARThreshold:      0.25,
		ConsecutiveFrames: 3,
		Window:            15 * time.Second,
		MinBlinks:         2,
		MaxBlinks:         8,
		MinFrames:         10,
	}
}

// eyeWithOpening строит шесть ориентиров глаза с заданным вертикальным
// раскрытием: при opening 0.8 EAR = 0.4 (открыт), при 0.1 EAR = 0.05 (закрыт)
func eyeWithOpening(opening float64) [6]classifier.Point {
	half := opening / 2
	return [6]classifier.Point{
		{X: 0, Y: 0},
		{X: 0.5, Y: half},
		{X: 1.5, Y: half},
		{X: 2, Y: 0},
		{X: 1.5, Y: -half},
		{X: 0.5, Y: -half},
	}
}

func openEyes() classifier.EyeLandmarks {
	return classifier.EyeLandmarks{Left: eyeWithOpening(0.8), Right: eyeWithOpening(0.8)}
}

func closedEyes() classifier.EyeLandmarks {
	return classifier.EyeLandmarks{Left: eyeWithOpening(0.1), Right: eyeWithOpening(0.1)}
}

// observeSequence скармливает сессии последовательность кадров с шагом 500мс,
// true - открытые глаза
func observeSequence(s *Session, start time.Time, pattern []bool) {
	for i, open := range pattern {
		lm := closedEyes()
		if open {
			lm = openEyes()
		}
		s.Observe(Observation{
			CapturedAt: start.Add(time.Duration(i) * 500 * time.Millisecond),
			Landmarks:  lm,
		})
	}
}

func TestEyeAspectRatio(t *testing.T) {
	assert.InDelta(t, 0.4, EyeAspectRatio(eyeWithOpening(0.8)), 0.01)
	assert.InDelta(t, 0.05, EyeAspectRatio(eyeWithOpening(0.1)), 0.01)
	assert.Zero(t, EyeAspectRatio([6]classifier.Point{}))
}

func TestSession_CountsBlinkAfterConsecutiveClosedFrames(t *testing.T) {
	// Подготовка
	s := NewSession(testSessionConfig())
	start := time.Now()
	s.Start(start)

	// Действие: открыт, три закрытых подряд, снова открыт - одно моргание
	observeSequence(s, start, []bool{true, false, false, false, true})

	// Проверки
	res := s.Evaluate(false)
	assert.Equal(t, 1, res.BlinkCount)
}

func TestSession_ShortClosureIsNoise(t *testing.T) {
	// Подготовка
	s := NewSession(testSessionConfig())
	start := time.Now()
	s.Start(start)

	// Действие: только два закрытых кадра подряд - меньше гистерезиса
	observeSequence(s, start, []bool{true, false, false, true, true})

	// Проверки
	res := s.Evaluate(false)
	assert.Zero(t, res.BlinkCount)
}

func TestSession_WindowExpiryStopsCollection(t *testing.T) {
	// Подготовка
	s := NewSession(testSessionConfig())
	start := time.Now()
	s.Start(start)

	require.True(t, s.Observe(Observation{CapturedAt: start, Landmarks: openEyes()}))

	// Действие: кадр за пределами окна закрывает сбор
	accepted := s.Observe(Observation{CapturedAt: start.Add(16 * time.Second), Landmarks: openEyes()})

	// Проверки
	assert.False(t, accepted)
	assert.Equal(t, StateEvaluating, s.State())
	// Дальнейшие кадры не учитываются
	assert.False(t, s.Observe(Observation{CapturedAt: start.Add(time.Second), Landmarks: openEyes()}))
}

func TestSession_Evaluate_Live(t *testing.T) {
	// Подготовка: два моргания в 14 пригодных кадрах
	s := NewSession(testSessionConfig())
	start := time.Now()
	s.Start(start)

	observeSequence(s, start, []bool{
		true, true,
		false, false, false,
		true, true,
		false, false, false,
		true, true, true, true,
	})

	// Действие
	res := s.Evaluate(false)

	// Проверки
	assert.Equal(t, VerdictLive, res.Verdict)
	assert.Equal(t, 2, res.BlinkCount)
	assert.Equal(t, 14, res.FrameCount)
}

func TestSession_Evaluate_InsufficientFrames(t *testing.T) {
	s := NewSession(testSessionConfig())
	start := time.Now()
	s.Start(start)

	observeSequence(s, start, []bool{true, false, false, false, true})

	res := s.Evaluate(false)

	assert.Equal(t, VerdictInsufficient, res.Verdict)
}

func TestSession_Evaluate_NoBlinksIsSpoof(t *testing.T) {
	// Фото не моргает: достаточно кадров, ноль морганий
	s := NewSession(testSessionConfig())
	start := time.Now()
	s.Start(start)

	observeSequence(s, start, []bool{true, true, true, true, true, true, true, true, true, true, true, true})

	res := s.Evaluate(false)

	assert.Equal(t, VerdictSpoof, res.Verdict)
	assert.Zero(t, res.BlinkCount)
}

func TestSession_Evaluate_TextureSpoofOverridesBlinks(t *testing.T) {
	// Даже с правдоподобными морганиями вердикт текстурного классификатора
	// решает в пользу подмены
	s := NewSession(testSessionConfig())
	start := time.Now()
	s.Start(start)

	observeSequence(s, start, []bool{
		true, false, false, false, true,
		false, false, false, true, true, true, true,
	})

	res := s.Evaluate(true)

	assert.Equal(t, VerdictSpoof, res.Verdict)
	assert.Contains(t, res.Detail, "texture")
}

func TestSession_Evaluate_TooManyBlinksIsSpoof(t *testing.T) {
	// Подготовка: 9 морганий при максимуме 8 - неестественная частота
	cfg := testSessionConfig()
	cfg.MinFrames = 2
	cfg.Window = 30 * time.Second
	s := NewSession(cfg)
	start := time.Now()
	s.Start(start)

	pattern := make([]bool, 0, 40)
	for i := 0; i < 9; i++ {
		pattern = append(pattern, false, false, false, true)
	}
	observeSequence(s, start, pattern)

	// Действие
	res := s.Evaluate(false)

	// Проверки
	assert.Equal(t, VerdictSpoof, res.Verdict)
	assert.Equal(t, 9, res.BlinkCount)
}

func TestSession_AbortIsNeverLive(t *testing.T) {
	s := NewSession(testSessionConfig())
	start := time.Now()
	s.Start(start)

	observeSequence(s, start, []bool{true, false, false, false, true})
	res := s.Abort()

	assert.Equal(t, VerdictInsufficient, res.Verdict)
	assert.Equal(t, StateDone, s.State())
}
