package db

import (
	"testing"

	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun/dialect"
)

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file:ledger.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("sqlite://ledger.db"))
	assert.Equal(t, "file:test?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("file:test?mode=memory&cache=shared"))
	assert.Equal(t, "file:x?_pragma=busy_timeout(1)", sqliteDSN("file:x?_pragma=busy_timeout(1)"))
}

func TestOpenSqlite(t *testing.T) {
	dbConn, err := Open(&service.Config{DatabaseUri: "file:opentest?mode=memory&cache=shared"})
	assert.NoError(t, err)
	defer dbConn.Close()
	assert.Equal(t, dialect.SQLite, dbConn.Dialect().Name())
	assert.NoError(t, dbConn.Ping())
}

func TestOpenInvalidDSN(t *testing.T) {
	_, err := Open(&service.Config{DatabaseUri: "mysql://user@localhost/ledger"})
	assert.Error(t, err)
}
