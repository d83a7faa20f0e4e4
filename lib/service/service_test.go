package service_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/getAlby/communityhub.go/db"
	"github.com/getAlby/communityhub.go/db/migrations"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"
	"github.com/ziflex/lecho/v3"
)

const (
	owner         = "owner-address"
	payoutAddress = "community-payout-address"
	alice         = "alice-address"
	bob           = "bob-address"
)

// newTestService returns a service backed by a fresh in-memory sqlite database.
func newTestService(t *testing.T) *service.CommunityhubService {
	t.Helper()
	ctx := context.Background()

	config := &service.Config{
		DatabaseUri:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		JWTSecret:     []byte("secret"),
		MaxNameLength: 256,
	}
	dbConn, err := db.Open(config)
	require.NoError(t, err)
	t.Cleanup(func() { dbConn.Close() })

	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	return &service.CommunityhubService{
		Config:      config,
		DB:          dbConn,
		Logger:      lecho.New(io.Discard),
		EventPubSub: service.NewPubsub(),
	}
}
