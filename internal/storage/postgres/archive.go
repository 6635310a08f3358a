package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NaughtyFishies/swn-character-generator/internal/game/character"
)

// ErrCharacterNotFound is returned when an archive lookup yields no rows.
var ErrCharacterNotFound = errors.New("character not found")

// ArchivedCharacter is one stored sheet with its archive metadata.
type ArchivedCharacter struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Sheet     *character.Character
}

// ArchiveRepository stores generated character sheets. The full sheet
// is kept as JSON next to a few summary columns for listing.
type ArchiveRepository struct {
	db *pgxpool.Pool
}

// NewArchiveRepository creates an ArchiveRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewArchiveRepository(db *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Save inserts a sheet and returns its generated ID.
//
// Precondition: c must be a fully synthesized character.
// Postcondition: Returns the new row's UUID or a non-nil error.
func (r *ArchiveRepository) Save(ctx context.Context, c *character.Character) (uuid.UUID, error) {
	sheet, err := json.Marshal(c)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshalling character sheet: %w", err)
	}

	id := uuid.New()
	_, err = r.db.Exec(ctx, `
		INSERT INTO characters (id, name, class, background, level, sheet)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, c.Name, c.Class, c.Background, c.Level, sheet,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting character: %w", err)
	}
	return id, nil
}

// Get retrieves an archived sheet by ID.
//
// Postcondition: Returns the ArchivedCharacter or ErrCharacterNotFound.
func (r *ArchiveRepository) Get(ctx context.Context, id uuid.UUID) (*ArchivedCharacter, error) {
	var (
		out   ArchivedCharacter
		sheet []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, created_at, sheet FROM characters WHERE id = $1`,
		id,
	).Scan(&out.ID, &out.CreatedAt, &sheet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("querying character: %w", err)
	}

	if err := json.Unmarshal(sheet, &out.Sheet); err != nil {
		return nil, fmt.Errorf("unmarshalling character sheet: %w", err)
	}
	return &out, nil
}

// List returns up to limit archived sheets, newest first.
//
// Precondition: limit must be > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *ArchiveRepository) List(ctx context.Context, limit int) ([]*ArchivedCharacter, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, created_at, sheet FROM characters
		ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	out := make([]*ArchivedCharacter, 0)
	for rows.Next() {
		var (
			a     ArchivedCharacter
			sheet []byte
		)
		if err := rows.Scan(&a.ID, &a.CreatedAt, &sheet); err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		if err := json.Unmarshal(sheet, &a.Sheet); err != nil {
			return nil, fmt.Errorf("unmarshalling character sheet: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Delete removes an archived sheet.
//
// Postcondition: Returns nil on success, ErrCharacterNotFound if no row matched.
func (r *ArchiveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}
	return nil
}
