package pg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"meetscribe/internal/app/model"
)

// Search queries the pgvector gallery. The <=> operator is cosine
// distance, so similarity is 1 - distance and the distance order is
// already best-first.
func (s *PostgresStore) Search(ctx context.Context, tenant string, embedding []float32, k int) ([]model.Candidate, error) {
	query := `
		SELECT person_id, name, email, department, position, 1 - (embedding <=> $1) AS similarity
		FROM voiceprints
		WHERE tenant = $2
		ORDER BY embedding <=> $1
		LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, vectorLiteral(embedding), tenant, k)
	if err != nil {
		return nil, fmt.Errorf("gallery search failed: %w", err)
	}
	defer rows.Close()

	var candidates []model.Candidate
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(&c.PersonID, &c.Name, &c.Email, &c.Department, &c.Position, &c.Similarity); err != nil {
			return nil, fmt.Errorf("gallery scan failed: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("gallery rows iteration failed: %w", err)
	}
	return candidates, nil
}

// Enroll inserts or replaces a voiceprint, keyed by (tenant, name).
func (s *PostgresStore) Enroll(ctx context.Context, record *model.VoiceprintRecord) error {
	query := `
		INSERT INTO voiceprints (tenant, name, email, department, position, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant, name) DO UPDATE
			SET email = $3, department = $4, position = $5, embedding = $6
		RETURNING person_id`

	err := s.db.QueryRowContext(ctx, query,
		record.Tenant, record.Name, record.Email, record.Department, record.Position,
		vectorLiteral(record.Embedding)).Scan(&record.PersonID)
	if err != nil {
		return fmt.Errorf("enroll voiceprint: %w", err)
	}
	return nil
}

// vectorLiteral renders an embedding in pgvector's input syntax.
func vectorLiteral(embedding []float32) string {
	parts := make([]string, len(embedding))
	for i, v := range embedding {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
