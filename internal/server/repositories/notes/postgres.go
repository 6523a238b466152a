package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/google/uuid"
)

const noteColumns = "id, user_id, title, content, created_at, modified_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]*models.Note, error) {
	if !isUUID(ownerID) {
		return []*models.Note{}, nil
	}

	q := psql.Select(noteColumns).
		From("notes").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at")

	return r.query(ctx, q)
}

func (r *PostgresRepository) Create(ctx context.Context, ownerID string, note *models.Note) (*models.Note, error) {
	query, args, err := psql.Insert("notes").
		Columns("user_id", "title", "content", "created_at", "modified_at").
		Values(ownerID, note.Title, note.Content, note.CreatedAt, note.ModifiedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&note.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	note.UserID = ownerID

	return note, nil
}

func (r *PostgresRepository) Update(ctx context.Context, ownerID, noteID string, upd Update) (*models.Note, error) {
	if !isUUID(ownerID) || !isUUID(noteID) {
		return nil, common.ErrorNotFound
	}

	query, args, err := psql.Update("notes").
		Set("title", upd.Title).
		Set("content", upd.Content).
		Set("modified_at", upd.ModifiedAt).
		Where(sq.Eq{"id": noteID, "user_id": ownerID}).
		Suffix("RETURNING " + noteColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	note := &models.Note{}
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.ModifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, noteID string) error {
	if !isUUID(ownerID) || !isUUID(noteID) {
		return common.ErrorNotFound
	}

	query, args, err := psql.Delete("notes").
		Where(sq.Eq{"id": noteID, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Search(ctx context.Context, ownerID, query string) ([]*models.Note, error) {
	if !isUUID(ownerID) {
		return []*models.Note{}, nil
	}

	pattern := "%" + escapeLike(query) + "%"
	q := psql.Select(noteColumns).
		From("notes").
		Where(sq.Eq{"user_id": ownerID}).
		Where(sq.Or{sq.ILike{"title": pattern}, sq.ILike{"content": pattern}}).
		OrderBy("created_at")

	return r.query(ctx, q)
}

func (r *PostgresRepository) query(ctx context.Context, b sq.SelectBuilder) ([]*models.Note, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := []*models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.ModifiedAt); err != nil {
			return nil, err
		}
		result = append(result, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match itself literally inside a LIKE pattern
// (backslash is the default escape character in Postgres).
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// isUUID accepts only the canonical 36-character form. uuid.Parse also takes
// urn:uuid: prefixes, which the uuid column type rejects.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
