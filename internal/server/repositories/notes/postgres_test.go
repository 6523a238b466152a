package notes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID = "8c4d0b4e-0000-4000-8000-000000000001"
	noteID  = "8c4d0b4e-0000-4000-8000-0000000000aa"

	selectNotesQuery = `(?s)^SELECT id, user_id, title, content, created_at, modified_at FROM notes WHERE user_id = \$1 ORDER BY created_at$`
	insertNoteQuery  = `(?s)^INSERT INTO notes \(user_id,title,content,created_at,modified_at\) VALUES \(\$1,\$2,\$3,\$4,\$5\) RETURNING id$`
	updateNoteQuery  = `(?s)^UPDATE notes SET title = \$1, content = \$2, modified_at = \$3 WHERE id = \$4 AND user_id = \$5 RETURNING id, user_id, title, content, created_at, modified_at$`
	deleteNoteQuery  = `(?s)^DELETE FROM notes WHERE id = \$1 AND user_id = \$2$`
	searchNotesQuery = `(?s)^SELECT id, user_id, title, content, created_at, modified_at FROM notes WHERE user_id = \$1 AND \(title ILIKE \$2 OR content ILIKE \$3\) ORDER BY created_at$`
)

var noteCols = []string{"id", "user_id", "title", "content", "created_at", "modified_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(selectNotesQuery).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(noteID, ownerID, "Groceries", "milk, eggs", at, at))

	got, err := repo.List(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, noteID, got[0].ID)
	assert.Equal(t, "milk, eggs", got[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectNotesQuery).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(noteCols))

	got, err := repo.List(context.Background(), ownerID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectNotesQuery).
		WithArgs(ownerID).
		WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), ownerID)
	assert.ErrorContains(t, err, "failed to select notes")
}

func TestPostgresCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(insertNoteQuery).
		WithArgs(ownerID, "Groceries", "milk, eggs", at, at).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(noteID))

	n, err := repo.Create(context.Background(), ownerID, &models.Note{Title: "Groceries", Content: "milk, eggs", CreatedAt: at, ModifiedAt: at})
	require.NoError(t, err)
	assert.Equal(t, noteID, n.ID)
	assert.Equal(t, ownerID, n.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	later := at.Add(time.Hour)

	mock.ExpectQuery(updateNoteQuery).
		WithArgs("Groceries v2", "milk, eggs, bread", later, noteID, ownerID).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(noteID, ownerID, "Groceries v2", "milk, eggs, bread", at, later))

	n, err := repo.Update(context.Background(), ownerID, noteID, Update{Title: "Groceries v2", Content: "milk, eggs, bread", ModifiedAt: later})
	require.NoError(t, err)
	assert.Equal(t, "Groceries v2", n.Title)
	assert.Equal(t, later, n.ModifiedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdate_NotOwned(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(updateNoteQuery).
		WithArgs("abc", "abcde", sqlmock.AnyArg(), noteID, ownerID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), ownerID, noteID, Update{Title: "abc", Content: "abcde"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdate_MalformedID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	_, err := repo.Update(context.Background(), ownerID, "123", Update{Title: "abc", Content: "abcde"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMalformedIDs_NoQuery(t *testing.T) {
	ids := []string{
		"123",
		"urn:uuid:" + noteID,
		"8c4d0b4e0000400080000000000000aa",
	}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)

			_, err := repo.Update(context.Background(), ownerID, id, Update{Title: "abc", Content: "abcde"})
			assert.ErrorIs(t, err, common.ErrorNotFound)

			err = repo.Delete(context.Background(), ownerID, id)
			assert.ErrorIs(t, err, common.ErrorNotFound)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID(noteID))
	assert.False(t, isUUID("urn:uuid:"+noteID))
	assert.False(t, isUUID("{"+noteID+"}"))
	assert.False(t, isUUID(""))
}

func TestPostgresDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteNoteQuery).
		WithArgs(noteID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), ownerID, noteID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDelete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteNoteQuery).
		WithArgs(noteID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), ownerID, noteID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresDelete_ExecError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteNoteQuery).
		WithArgs(noteID, ownerID).
		WillReturnError(errors.New("boom"))

	err := repo.Delete(context.Background(), ownerID, noteID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresSearch_EscapesPattern(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(searchNotesQuery).
		WithArgs(ownerID, `%50\%\_off\_%`, `%50\%\_off\_%`).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(noteID, ownerID, "Sale", "50%_off_ everything", at, at))

	got, err := repo.Search(context.Background(), ownerID, "50%_off_")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "milk", escapeLike("milk"))
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
}
