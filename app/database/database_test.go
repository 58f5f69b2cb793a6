package database_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendaonline/tienda-api/app/config"
	"github.com/tiendaonline/tienda-api/app/database"
	"github.com/tiendaonline/tienda-api/app/database/databasetest"
	"github.com/tiendaonline/tienda-api/app/logging"
)

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, _, err := database.New(config.Database{Driver: "oracle", DSN: "x"}, logging.New(io.Discard, false))
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestMigrateCreatesTables(t *testing.T) {
	db := databasetest.Open(t)

	assert.True(t, db.Migrator().HasTable("categoria"))
	assert.True(t, db.Migrator().HasTable("producto"))
	assert.True(t, db.Migrator().HasColumn("producto", "categoria_id"))
	assert.True(t, db.Migrator().HasColumn("producto", "precio"))
}

func TestCheckerPing(t *testing.T) {
	db := databasetest.Open(t)
	checker := database.NewChecker(db)

	require.NoError(t, checker.Ping(context.Background()))

	// The connection goes back to the pool: a second check still succeeds
	// with a pool of one.
	require.NoError(t, checker.Ping(context.Background()))
}

func TestCheckerPingClosedPool(t *testing.T) {
	db := databasetest.Open(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = database.NewChecker(db).Ping(context.Background())
	assert.Error(t, err)
}

func TestCheckerPingCancelledContext(t *testing.T) {
	db := databasetest.Open(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	assert.Error(t, database.NewChecker(db).Ping(ctx))
}
