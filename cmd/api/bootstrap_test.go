package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
)

func stubSchema(t *testing.T, mongoErr, gormErr error) (mongoCalls, gormCalls *int) {
	t.Helper()
	origMongo, origGorm := ensureMongoIndexes, autoMigrate
	t.Cleanup(func() {
		ensureMongoIndexes, autoMigrate = origMongo, origGorm
	})

	mongoCalls, gormCalls = new(int), new(int)
	ensureMongoIndexes = func(context.Context, *mongo.Database) error {
		*mongoCalls++
		return mongoErr
	}
	autoMigrate = func(*gorm.DB) error {
		*gormCalls++
		return gormErr
	}
	return mongoCalls, gormCalls
}

func TestEnsureSchema_ByDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("mongo", func(t *testing.T) {
		mongoCalls, gormCalls := stubSchema(t, nil, nil)
		a := &app{cfg: config.Config{DBDriver: config.DriverMongo}, logger: zap.NewNop()}

		require.NoError(t, a.ensureSchema(ctx))
		assert.Equal(t, 1, *mongoCalls)
		assert.Equal(t, 0, *gormCalls)
	})

	t.Run("postgres", func(t *testing.T) {
		mongoCalls, gormCalls := stubSchema(t, nil, nil)
		a := &app{cfg: config.Config{DBDriver: config.DriverPostgres}, logger: zap.NewNop()}

		require.NoError(t, a.ensureSchema(ctx))
		assert.Equal(t, 0, *mongoCalls)
		assert.Equal(t, 1, *gormCalls)
	})

	t.Run("unknown driver", func(t *testing.T) {
		mongoCalls, gormCalls := stubSchema(t, nil, nil)
		a := &app{cfg: config.Config{DBDriver: "sqlite"}, logger: zap.NewNop()}

		assert.Error(t, a.ensureSchema(ctx))
		assert.Equal(t, 0, *mongoCalls+*gormCalls)
	})
}

func TestEnsureSchema_PropagatesError(t *testing.T) {
	boom := errors.New("index build failed")
	stubSchema(t, boom, nil)
	a := &app{cfg: config.Config{DBDriver: config.DriverMongo}, logger: zap.NewNop()}

	assert.ErrorIs(t, a.ensureSchema(context.Background()), boom)
}
