package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/attendance_verification_system/internal/identity"
	"github.com/shenikar/attendance_verification_system/internal/service"
)

type SubjectRepository struct {
	db *pgxpool.Pool
}

func NewSubjectRepository(db *pgxpool.Pool) service.SubjectRepository {
	return &SubjectRepository{db: db}
}

// SaveSubject сохраняет регистрацию субъекта. Повторная регистрация
// того же субъекта заменяет эталонный вектор
func (r *SubjectRepository) SaveSubject(ctx context.Context, enrollment identity.Enrollment) error {
	embedding, err := json.Marshal(enrollment.Embedding)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	query := `
		INSERT INTO subjects (subject_id, name, embedding)
		VALUES ($1, $2, $3)
		ON CONFLICT (subject_id) DO UPDATE SET
			name = EXCLUDED.name,
			embedding = EXCLUDED.embedding,
			updated_at = NOW();
	`
	if _, err := r.db.Exec(ctx, query, enrollment.SubjectID, enrollment.Name, embedding); err != nil {
		return fmt.Errorf("failed to save subject: %w", err)
	}
	return nil
}

// ListEnrollments возвращает все регистрации для прогрева галереи
func (r *SubjectRepository) ListEnrollments(ctx context.Context) ([]identity.Enrollment, error) {
	query := `SELECT subject_id, name, embedding FROM subjects ORDER BY created_at;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]identity.Enrollment, 0)
	for rows.Next() {
		var e identity.Enrollment
		var raw []byte
		if err := rows.Scan(&e.SubjectID, &e.Name, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan subject row: %w", err)
		}
		if err := json.Unmarshal(raw, &e.Embedding); err != nil {
			return nil, fmt.Errorf("failed to unmarshal embedding: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error enrollment iteration: %w", err)
	}
	return enrollments, nil
}
