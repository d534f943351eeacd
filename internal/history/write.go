package history

import (
	"context"
	"fmt"
	"time"
)

// Record inserts an outfit entry and its pieces in one transaction.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - recording the same
// entry twice is a no-op.
//
// CreatedAt is stored as RFC 3339 UTC so lexical ordering matches
// chronological ordering.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record outfit: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO outfits
		(id, created_at, seed, warmth, comfort, fancy, required_piece)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		entry.ID,
		entry.CreatedAt.UTC().Format(time.RFC3339),
		entry.Seed,
		entry.Warmth,
		entry.Comfort,
		entry.Fancy,
		entry.RequiredPiece,
	)
	if err != nil {
		return fmt.Errorf("record outfit: %w", err)
	}

	// Duplicate id: skip piece inserts so the entry stays consistent.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return tx.Commit()
	}

	for i, piece := range entry.Pieces {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO outfit_pieces (outfit_id, position, category, name, filename)
			VALUES (?, ?, ?, ?, ?)
		`,
			entry.ID,
			i,
			piece.Category,
			piece.Name,
			piece.Filename,
		)
		if err != nil {
			return fmt.Errorf("record outfit piece %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record outfit: %w", err)
	}

	return nil
}
