package identity

import (
	"errors"
	"math"
	"sync"
)

// Ошибки сопоставления. Причины "нет зарегистрированных субъектов" и
// "в кадре нет пригодного лица" не смешиваются: они ведут к разным
// сообщениям пользователю и разным выводам о мошенничестве
var (
	ErrEmptyGallery   = errors.New("identity: no enrolled subjects")
	ErrNoMatch        = errors.New("identity: no match above threshold")
	ErrAmbiguousMatch = errors.New("identity: ambiguous match")
)

// Enrollment - зарегистрированный эталонный вектор субъекта
type Enrollment struct {
	SubjectID string
	Name      string
	Embedding []float64
}

// Gallery - галерея зарегистрированных векторов. Записи при регистрации
// синхронизированы по copy-on-write: Snapshot всегда видит целостный срез,
// даже во время конкурентной регистрации
type Gallery struct {
	mu      sync.RWMutex
	entries []Enrollment
}

func NewGallery() *Gallery {
	return &Gallery{}
}

// Add добавляет запись, создавая новый срез вместо мутации старого
func (g *Gallery) Add(e Enrollment) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entries := make([]Enrollment, len(g.entries), len(g.entries)+1)
	copy(entries, g.entries)
	g.entries = append(entries, e)
}

// Replace целиком заменяет содержимое галереи (прогрев из хранилища)
func (g *Gallery) Replace(entries []Enrollment) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = entries
}

// Snapshot возвращает текущий срез галереи для чтения
func (g *Gallery) Snapshot() []Enrollment {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.entries
}

func (g *Gallery) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Match - найденное соответствие
type Match struct {
	SubjectID  string
	Name       string
	Confidence float64
	Distance   float64
}

// Matcher сопоставляет вектор-пробу с галереей
type Matcher struct {
	gallery   *Gallery
	threshold float64
	epsilon   float64
}

func NewMatcher(gallery *Gallery, threshold, epsilon float64) *Matcher {
	return &Matcher{gallery: gallery, threshold: threshold, epsilon: epsilon}
}

// Match возвращает субъекта с минимальным расстоянием до пробы при условии
// confidence >= порога. Два кандидата с расстояниями в пределах epsilon -
// неоднозначность: отклоняется целиком, а не разрешается произвольным
// выбором (возможные близнецы или состязательная коллизия)
func (m *Matcher) Match(probe []float64) (*Match, error) {
	entries := m.gallery.Snapshot()
	if len(entries) == 0 {
		return nil, ErrEmptyGallery
	}

	bestIdx, secondIdx := -1, -1
	bestDist := math.Inf(1)
	secondDist := math.Inf(1)

	for i, e := range entries {
		d := euclideanDistance(probe, e.Embedding)
		if d < bestDist {
			secondDist, secondIdx = bestDist, bestIdx
			bestDist, bestIdx = d, i
		} else if d < secondDist {
			secondDist, secondIdx = d, i
		}
	}

	confidence := distanceToConfidence(bestDist)
	if confidence < m.threshold {
		return nil, ErrNoMatch
	}

	// Неоднозначность имеет смысл только между разными субъектами:
	// повторная регистрация того же субъекта коллизией не считается
	if secondIdx >= 0 && entries[secondIdx].SubjectID != entries[bestIdx].SubjectID &&
		secondDist-bestDist <= m.epsilon {
		return nil, ErrAmbiguousMatch
	}

	best := entries[bestIdx]
	return &Match{
		SubjectID:  best.SubjectID,
		Name:       best.Name,
		Confidence: confidence,
		Distance:   bestDist,
	}, nil
}

// distanceToConfidence переводит евклидово расстояние в схожесть [0,1]
func distanceToConfidence(distance float64) float64 {
	c := 1 - distance
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func euclideanDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
