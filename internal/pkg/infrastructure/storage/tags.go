package storage

import (
	"context"
	"errors"
	"time"

	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) GetTag(ctx context.Context, tagID string) (types.TagValue, error) {
	var value string
	var updatedOn time.Time

	err := s.pool.QueryRow(ctx, `
		SELECT value, updated_on
		FROM tags
		WHERE tag_id = @tag_id
	`, pgx.NamedArgs{"tag_id": tagID}).Scan(&value, &updatedOn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.TagValue{}, ErrNoRows
		}
		return types.TagValue{}, err
	}

	return types.TagValue{
		ID:        tagID,
		Value:     value,
		UpdatedAt: updatedOn,
	}, nil
}

func (s *Storage) SetTag(ctx context.Context, tag types.TagValue) error {
	if tag.ID == "" {
		return ErrNoID
	}

	ts := tag.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	args := pgx.NamedArgs{
		"tag_id":     tag.ID,
		"value":      tag.Value,
		"updated_on": ts,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tags (tag_id, value, updated_on)
		VALUES (@tag_id, @value, @updated_on)
		ON CONFLICT (tag_id) DO UPDATE SET value = EXCLUDED.value, updated_on = EXCLUDED.updated_on
	`, args)
	if err != nil {
		return ErrStoreFailed
	}

	return nil
}
