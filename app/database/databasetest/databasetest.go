// Package databasetest provides migrated in-memory SQLite databases for tests.
package databasetest

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tiendaonline/tienda-api/app/config"
	"github.com/tiendaonline/tienda-api/app/database"
	"github.com/tiendaonline/tienda-api/app/logging"
)

var seq atomic.Int64

// Open returns a fresh, migrated database private to t. It is closed when
// the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_fk=1", name, seq.Add(1))

	db, closeDB, err := database.New(config.Database{
		Driver:          config.DriverSQLite,
		DSN:             dsn,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}, logging.New(io.Discard, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeDB() })

	require.NoError(t, database.Migrate(db))
	return db
}
