package history

import (
	"context"
	"fmt"
	"time"
)

// Recent returns the most recent entries, newest first, up to limit.
// Results are ordered deterministically: ORDER BY created_at DESC,
// id ASC as a tie-break for entries recorded in the same second.
//
// Returns an empty slice (not nil) if no entries exist.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, seed, warmth, comfort, fancy, required_piece
		FROM outfits
		ORDER BY created_at DESC, id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query outfits: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &createdAt, &e.Seed, &e.Warmth, &e.Comfort, &e.Fancy, &e.RequiredPiece); err != nil {
			return nil, fmt.Errorf("scan outfit: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outfits: %w", err)
	}

	for i := range entries {
		pieces, err := s.readPieces(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Pieces = pieces
	}

	return entries, nil
}

// RecentPieceNames returns the names of every piece worn in the last n
// outfits. Used by the generate command's avoid-worn filter.
//
// Returns an empty slice (not nil) if no entries exist.
func (s *Store) RecentPieceNames(ctx context.Context, n int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT p.name
		FROM outfit_pieces p
		JOIN (
			SELECT id FROM outfits
			ORDER BY created_at DESC, id ASC
			LIMIT ?
		) recent ON p.outfit_id = recent.id
		ORDER BY p.name ASC
	`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent pieces: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan piece name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate piece names: %w", err)
	}

	return names, nil
}

// readPieces returns an outfit's pieces in fill order.
func (s *Store) readPieces(ctx context.Context, outfitID string) ([]WornPiece, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, name, filename
		FROM outfit_pieces
		WHERE outfit_id = ?
		ORDER BY position ASC
	`, outfitID)
	if err != nil {
		return nil, fmt.Errorf("query outfit pieces: %w", err)
	}
	defer rows.Close()

	pieces := []WornPiece{}
	for rows.Next() {
		var p WornPiece
		if err := rows.Scan(&p.Category, &p.Name, &p.Filename); err != nil {
			return nil, fmt.Errorf("scan outfit piece: %w", err)
		}
		pieces = append(pieces, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outfit pieces: %w", err)
	}

	return pieces, nil
}
