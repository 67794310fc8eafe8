package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestSystemRepositoryFindByCode(t *testing.T) {
	db, mock := mockDB(t)
	repo := NewSystemRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "systems" WHERE system_code = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "system_code", "name"}).
			AddRow(id.String(), "SYS-001", "Core Banking"))

	system, err := repo.FindByCode(context.Background(), "SYS-001")
	require.NoError(t, err)
	assert.Equal(t, "SYS-001", system.SystemCode)
	assert.Equal(t, "Core Banking", system.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceSectionClearsWhenEmpty(t *testing.T) {
	db, mock := mockDB(t)
	repo := NewReviewRepository(db)
	reviewID := uuid.New()

	mock.ExpectExec(`DELETE FROM "business_capabilities" WHERE review_id = \$1`).
		WithArgs(reviewID).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.ReplaceSection(context.Background(), reviewID,
		model.SectionBusinessCapabilities, []model.BusinessCapability{})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceSectionRejectsUnknownSection(t *testing.T) {
	db, _ := mockDB(t)
	repo := NewReviewRepository(db)

	err := repo.ReplaceSection(context.Background(), uuid.New(),
		model.Section("bogus"), []model.BusinessCapability{})
	assert.Error(t, err)
}

func TestGetDBPrefersContextTransaction(t *testing.T) {
	db, _ := mockDB(t)
	other, _ := mockDB(t)

	ctx := context.WithValue(context.Background(), txKey, other)
	got := GetDB(ctx, db)
	assert.Equal(t, other.Statement.ConnPool, got.Statement.ConnPool)

	got = GetDB(context.Background(), db)
	assert.Equal(t, db.Statement.ConnPool, got.Statement.ConnPool)
}
