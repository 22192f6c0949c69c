package fraud

import "fmt"

// DetectorConfig - пороги автономных детекторов
type DetectorConfig struct {
	MinFaceSizePx      int
	DarkBrightness     float64
	BrightBrightness   float64
	UniformLightingStd float64
	// MinMotionAvg - среднее межкадровое движение ниже порога означает
	// статичное изображение (фото)
	MinMotionAvg float64
	// LoopMotionStd / LoopMotionAvg - слишком равномерное движение при
	// заметной амплитуде выдает зацикленное видео
	LoopMotionStd float64
	LoopMotionAvg float64
	// MinMotionFrames - минимум кадров для анализа движения
	MinMotionFrames int
}

// FrameMetrics - сырые измерения по кадрам от внешнего анализатора
type FrameMetrics struct {
	FaceCount      int
	FaceWidth      int
	FaceHeight     int
	MeanBrightness float64
	StdBrightness  float64
	MotionAvg      float64
	MotionStd      float64
	FrameCount     int
}

// Detector превращает сырые измерения в сигналы мошенничества.
// Каждый детектор дает ноль или один сигнал
type Detector struct {
	cfg DetectorConfig
}

func NewDetector(cfg DetectorConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Inspect прогоняет все автономные детекторы по измерениям кадров
func (d *Detector) Inspect(m FrameMetrics) []Signal {
	var signals []Signal

	// Несколько лиц в кадре - попытка отметиться за другого
	if m.FaceCount > 1 {
		signals = append(signals, Signal{
			Type:       SignalMultipleFaces,
			Confidence: 1.0,
			Detail:     fmt.Sprintf("%d faces detected", m.FaceCount),
		})
	}

	if m.FaceCount == 1 && (m.FaceWidth < d.cfg.MinFaceSizePx || m.FaceHeight < d.cfg.MinFaceSizePx) {
		signals = append(signals, Signal{
			Type:       SignalFaceTooSmall,
			Confidence: 0.6,
			Detail:     fmt.Sprintf("face %dx%dpx below minimum %dpx", m.FaceWidth, m.FaceHeight, d.cfg.MinFaceSizePx),
		})
	}

	if lighting, detail := d.lightingAnomaly(m); lighting {
		signals = append(signals, Signal{
			Type:       SignalLightingAnomaly,
			Confidence: 0.7,
			Detail:     detail,
		})
	}

	if motion, detail := d.motionAnomaly(m); motion {
		signals = append(signals, Signal{
			Type:       SignalMotionAnomaly,
			Confidence: 0.8,
			Detail:     detail,
		})
	}

	return signals
}

func (d *Detector) lightingAnomaly(m FrameMetrics) (bool, string) {
	if m.MeanBrightness < d.cfg.DarkBrightness {
		return true, fmt.Sprintf("extremely dark frame (mean %.1f)", m.MeanBrightness)
	}
	if m.MeanBrightness > d.cfg.BrightBrightness {
		return true, fmt.Sprintf("extremely bright frame (mean %.1f)", m.MeanBrightness)
	}
	// Экраны дают неестественно равномерную подсветку
	if m.StdBrightness > 0 && m.StdBrightness < d.cfg.UniformLightingStd {
		return true, fmt.Sprintf("suspiciously uniform lighting (std %.1f)", m.StdBrightness)
	}
	return false, ""
}

func (d *Detector) motionAnomaly(m FrameMetrics) (bool, string) {
	if m.FrameCount < d.cfg.MinMotionFrames {
		return false, ""
	}
	// У живого человека есть естественные микродвижения, фото статично
	if m.MotionAvg < d.cfg.MinMotionAvg {
		return true, fmt.Sprintf("insufficient motion (avg %.2f)", m.MotionAvg)
	}
	if m.MotionStd < d.cfg.LoopMotionStd && m.MotionAvg > d.cfg.LoopMotionAvg {
		return true, fmt.Sprintf("unnaturally consistent motion (std %.2f)", m.MotionStd)
	}
	return false, ""
}
