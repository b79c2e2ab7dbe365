package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"foodorder/internal/models"
	"foodorder/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

// newSQLiteDB opens a private in-memory database for one test.
func newSQLiteDB(t *testing.T, now func() time.Time) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: now,
		Logger:  logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))
	return db
}

func newOrder(userID string, names ...string) *models.Order {
	dishes := make([]models.Dish, 0, len(names))
	for _, n := range names {
		dishes = append(dishes, models.Dish{Name: n, Price: decimal.NewFromInt(100)})
	}
	return &models.Order{
		UserID:               userID,
		Dishes:               dishes,
		ExpectedDeliveryTime: time.Now().Add(30 * time.Minute),
		Status:               models.StatusProcessing,
	}
}

// orderRepositoryContract runs the same checks against every OrderRepository.
func orderRepositoryContract(t *testing.T, repo repositories.OrderRepository) {
	ctx := context.Background()

	first := newOrder("alice", "Pizza")
	second := newOrder("alice", "Pasta", "Salad")
	other := newOrder("bob", "Soup")
	for _, o := range []*models.Order{first, second, other} {
		require.NoError(t, repo.Create(ctx, o))
		assert.NotEmpty(t, o.ID)
		assert.False(t, o.CreatedAt.IsZero(), "store assigns CreatedAt")
	}
	assert.False(t, second.CreatedAt.Before(first.CreatedAt))

	orders, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID, "newest first")
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Len(t, orders[0].Dishes, 2)
	assert.Equal(t, "Pasta", orders[0].Dishes[0].Name)
	assert.True(t, orders[0].Dishes[0].Price.Equal(decimal.NewFromInt(100)))
	for _, o := range orders {
		assert.Equal(t, "alice", o.UserID)
	}

	none, err := repo.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	require.NoError(t, repo.UpdateStatus(ctx, first.ID, models.StatusReceived))
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, models.StatusReceived), "re-confirm is idempotent")
	orders, err = repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReceived, orders[1].Status)
	assert.Equal(t, models.StatusProcessing, orders[0].Status)

	err = repo.UpdateStatus(ctx, "missing", models.StatusReceived)
	assert.True(t, errors.Is(err, repositories.ErrOrderNotFound))
}

func TestGORMOrderRepository(t *testing.T) {
	db := newSQLiteDB(t, stepClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	orderRepositoryContract(t, repositories.NewGORMOrderRepository(db))
}

func TestMockOrderRepository(t *testing.T) {
	orderRepositoryContract(t, repositories.NewMockOrderRepository())
}

func TestMockOrderRepository_CreatedAtNeverGoesBackwards(t *testing.T) {
	times := []time.Time{
		time.Date(2024, 5, 1, 12, 0, 10, 0, time.UTC),
		time.Date(2024, 5, 1, 12, 0, 5, 0, time.UTC),
	}
	i := 0
	repo := repositories.NewMockOrderRepositoryWithClock(func() time.Time {
		ts := times[i]
		i++
		return ts
	})

	a, b := newOrder("alice", "A"), newOrder("alice", "B")
	require.NoError(t, repo.Create(context.Background(), a))
	require.NoError(t, repo.Create(context.Background(), b))
	assert.Equal(t, a.CreatedAt, b.CreatedAt)

	orders, err := repo.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, b.ID, orders[0].ID, "ties keep insertion order, newest first")
}

func TestMenuRepositories(t *testing.T) {
	db := newSQLiteDB(t, time.Now)
	for name, repo := range map[string]repositories.MenuRepository{
		"gorm": repositories.NewGORMMenuRepository(db),
		"mock": repositories.NewMockMenuRepository(),
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			empty, err := repo.GetAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty)

			item := &models.MenuItem{Fields: map[string]any{"name": "Varenyky", "price": 85.0, "vegan": true}}
			require.NoError(t, repo.Create(ctx, item))
			assert.NotEmpty(t, item.ID)

			items, err := repo.GetAll(ctx)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, item.ID, items[0].ID)
			assert.Equal(t, "Varenyky", items[0].Fields["name"])
			assert.Equal(t, true, items[0].Fields["vegan"])
		})
	}
}

func newMockedPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGORMOrderRepository_StoreFailures(t *testing.T) {
	db, mock := newMockedPostgres(t)
	repo := repositories.NewGORMOrderRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "orders"`).WillReturnError(errors.New("connection refused"))
	_, err := repo.ListByUser(ctx, "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	mock.ExpectExec(`UPDATE "orders" SET "status"`).WillReturnError(errors.New("connection reset"))
	err = repo.UpdateStatus(ctx, "o-1", models.StatusReceived)
	require.Error(t, err)
	assert.False(t, errors.Is(err, repositories.ErrOrderNotFound))

	mock.ExpectExec(`UPDATE "orders" SET "status"`).WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.UpdateStatus(ctx, "o-2", models.StatusReceived)
	assert.True(t, errors.Is(err, repositories.ErrOrderNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGORMMenuRepository_StoreFailure(t *testing.T) {
	db, mock := newMockedPostgres(t)
	repo := repositories.NewGORMMenuRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "menu"`).WillReturnError(errors.New("unavailable"))
	_, err := repo.GetAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get menu")
	assert.NoError(t, mock.ExpectationsWereMet())
}
