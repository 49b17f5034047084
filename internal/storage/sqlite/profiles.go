package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/mentoria/internal/core"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) GetProfile(ctx context.Context, userID string) (core.UserProfile, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT profile FROM user_profiles WHERE user_id = ?`, userID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return core.UserProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	profile := core.UserProfile{}
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

func (r *ProfilesRepo) PutProfile(ctx context.Context, userID string, profile core.UserProfile) error {
	if profile == nil {
		profile = core.UserProfile{}
	}
	raw, err := marshalJSON(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	query := `
		INSERT INTO user_profiles (user_id, profile, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET profile = excluded.profile, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, userID, raw, toMillis(time.Now())); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
