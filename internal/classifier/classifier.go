package classifier

import (
	"context"
	"errors"
)

//go:generate mockgen -source=classifier.go -destination=mocks/mock_classifier.go -package=mocks

// ErrExtractionFailed возвращается, когда внешний классификатор не смог
// извлечь признаки из кадра (нет лица, нечитаемое изображение и т.п.)
var ErrExtractionFailed = errors.New("classifier: extraction failed")

// Point - точка лицевого ориентира в пикселях кадра
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EyeLandmarks - по шесть ориентиров на каждый глаз (p1..p6),
// достаточно для вычисления Eye Aspect Ratio
type EyeLandmarks struct {
	Left  [6]Point `json:"left"`
	Right [6]Point `json:"right"`
}

// TextureResult - вердикт текстурного анализа (фото/экран против живого лица)
type TextureResult struct {
	IsSpoof    bool    `json:"is_spoof"`
	Confidence float64 `json:"confidence"`
}

// EmotionResult - распознанная эмоция
type EmotionResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// FrameAnalysis - сырые измерения по последовательности кадров для
// детекторов мошенничества. Пороговые решения принимаются на нашей стороне
type FrameAnalysis struct {
	FaceCount      int     `json:"face_count"`
	FaceWidth      int     `json:"face_width"`
	FaceHeight     int     `json:"face_height"`
	MeanBrightness float64 `json:"mean_brightness"`
	StdBrightness  float64 `json:"std_brightness"`
	MotionAvg      float64 `json:"motion_avg"`
	MotionStd      float64 `json:"motion_std"`
	FrameCount     int     `json:"frame_count"`
}

// Service - контракт внешнего ML-сервиса. Все инференс-вызовы ядра проходят
// через этот интерфейс, что позволяет подставлять детерминированные двойники
// в тестах
type Service interface {
	// ExtractEmbedding извлекает вектор признаков лица из кадра
	ExtractEmbedding(ctx context.Context, image []byte) ([]float64, error)
	// ClassifyEyeState возвращает ориентиры глаз для одного кадра
	ClassifyEyeState(ctx context.Context, image []byte) (*EyeLandmarks, error)
	// ClassifyTexture проверяет кадр на признаки фото/экрана
	ClassifyTexture(ctx context.Context, image []byte) (*TextureResult, error)
	// ClassifyEmotion распознает эмоцию; вызывается только после принятия записи
	ClassifyEmotion(ctx context.Context, image []byte) (*EmotionResult, error)
	// AnalyzeFrames возвращает агрегированные измерения по последовательности кадров
	AnalyzeFrames(ctx context.Context, images [][]byte) (*FrameAnalysis, error)
}
