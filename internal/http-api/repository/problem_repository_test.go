package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProblemRepository(db)

	cols := []string{"id", "form", "name", "nickname", "animationResource", "answer", "audioResource", "creator", "lastModifier", "status", "statementHTML", "imageURL"}
	mock.ExpectQuery("SELECT \\* FROM `problem` WHERE id = \\?").WillReturnRows(
		sqlmock.NewRows(cols).AddRow(3, nil, "Fractions", nil, nil, "1/2", nil, "alice", nil, "ready", "<p>Half of one?</p>", nil))

	problem, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), problem.ID)
	assert.Equal(t, "Fractions", *problem.Name)
	assert.Equal(t, "<p>Half of one?</p>", *problem.StatementHTML)
	assert.Nil(t, problem.ImageURL)

	mock.ExpectQuery("SELECT \\* FROM `problem` WHERE id = \\?").WillReturnRows(sqlmock.NewRows(cols))
	_, err = repo.FindByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrNotFound)
}
