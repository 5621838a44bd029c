package results

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists recordings in PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a PostgreSQL-backed store from a database URL.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PGStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PGStore) Close() {
	s.pool.Close()
}

// Save inserts a recording and its emotion scores in one transaction,
// assigning an ID if the recording has none.
func (s *PGStore) Save(ctx context.Context, rec *Recording) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO recordings (id, filename, recorded_at)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, query, rec.ID, rec.Filename, rec.RecordedAt); err != nil {
		return fmt.Errorf("inserting recording: %w", err)
	}

	emotionQuery := `
		INSERT INTO recording_emotions (recording_id, position, name, score, peak_score, peak_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, e := range rec.Emotions {
		if _, err := tx.Exec(ctx, emotionQuery, rec.ID, i, e.Name, e.Score, e.PeakScore, e.PeakAt); err != nil {
			return fmt.Errorf("inserting emotion score: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing recording: %w", err)
	}
	return nil
}

// Get retrieves a recording and its emotion scores by ID.
func (s *PGStore) Get(ctx context.Context, id uuid.UUID) (*Recording, error) {
	query := `
		SELECT id, filename, recorded_at
		FROM recordings
		WHERE id = $1
	`
	var rec Recording
	err := s.pool.QueryRow(ctx, query, id).Scan(&rec.ID, &rec.Filename, &rec.RecordedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying recording: %w", err)
	}

	emotions, err := s.emotionsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Emotions = emotions

	return &rec, nil
}

// List returns recordings newest first, each with its emotion scores.
func (s *PGStore) List(ctx context.Context, limit int) ([]Recording, error) {
	query := `
		SELECT id, filename, recorded_at
		FROM recordings
		ORDER BY recorded_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recordings: %w", err)
	}
	defer rows.Close()

	var recordings []Recording
	for rows.Next() {
		var rec Recording
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning recording: %w", err)
		}
		recordings = append(recordings, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recordings: %w", err)
	}

	for i := range recordings {
		emotions, err := s.emotionsFor(ctx, recordings[i].ID)
		if err != nil {
			return nil, err
		}
		recordings[i].Emotions = emotions
	}

	return recordings, nil
}

// Count returns the number of stored recordings.
func (s *PGStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recordings`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting recordings: %w", err)
	}
	return count, nil
}

// emotionsFor loads the emotion scores of one recording in stored order.
func (s *PGStore) emotionsFor(ctx context.Context, id uuid.UUID) ([]EmotionScore, error) {
	query := `
		SELECT name, score, peak_score, peak_at
		FROM recording_emotions
		WHERE recording_id = $1
		ORDER BY position
	`
	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying emotion scores: %w", err)
	}
	defer rows.Close()

	var emotions []EmotionScore
	for rows.Next() {
		var e EmotionScore
		if err := rows.Scan(&e.Name, &e.Score, &e.PeakScore, &e.PeakAt); err != nil {
			return nil, fmt.Errorf("scanning emotion score: %w", err)
		}
		emotions = append(emotions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating emotion scores: %w", err)
	}

	return emotions, nil
}

var _ Store = (*PGStore)(nil)
