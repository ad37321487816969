package repositories_test

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/models"
	"inventory/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// clock is a settable time source for WithClock.
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := database.Open(context.Background(), config.DriverSQLite, dsn, 1)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, config.DriverSQLite))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestStore(t *testing.T) (*repositories.GORMStore, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)}
	return repositories.NewGORMStore(openTestDB(t), repositories.WithClock(c.now)), c
}

func mustCategory(t *testing.T, store repositories.Store, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, IsActive: true}
	require.NoError(t, store.Categories().Create(context.Background(), category))
	return category
}

func mustProduct(t *testing.T, store repositories.Store, name, price string, categoryID uint, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      1,
		CategoryID: categoryID,
		IsActive:   active,
	}
	require.NoError(t, store.Products().Create(context.Background(), product))
	return product
}

func TestGORMStore_StampsTimestamps(t *testing.T) {
	ctx := context.Background()
	store, c := newTestStore(t)
	created := c.t

	category := mustCategory(t, store, "Books")
	assert.True(t, category.CreatedAt.Equal(created))
	assert.True(t, category.UpdatedAt.Equal(created))

	c.t = created.Add(time.Hour)
	category.Name = "Novels"
	require.NoError(t, store.Categories().Update(ctx, category))

	stored, err := store.Categories().GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Novels", stored.Name)
	assert.True(t, stored.CreatedAt.Equal(created), "created_at must not move on update")
	assert.True(t, stored.UpdatedAt.Equal(created.Add(time.Hour)))
}

func TestGORMStore_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Categories().Create(ctx, &models.Category{Name: "Temp", IsActive: true}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := store.Categories().NameExists(ctx, "Temp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGORMStore_TransactionCommit(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	err := store.Transaction(ctx, func(tx repositories.Store) error {
		category := &models.Category{Name: "Kept", IsActive: true}
		if err := tx.Categories().Create(ctx, category); err != nil {
			return err
		}
		return tx.Products().Create(ctx, &models.Product{
			Name:       "Item",
			Price:      decimal.NewFromInt(3),
			CategoryID: category.ID,
			IsActive:   true,
		})
	})
	require.NoError(t, err)

	products, err := store.Products().GetAllActive(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Kept", products[0].Category.Name)
}
