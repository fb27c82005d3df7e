package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retention-workers/internal/common/config"
)

func TestPostgresClient_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	client := NewPostgresFromDB(db)
	assert.Same(t, db, client.GetDB())

	mock.ExpectPing()
	assert.NoError(t, client.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres ping failed")

	mock.ExpectClose()
	require.NoError(t, client.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgres_DoesNotDial(t *testing.T) {
	client, err := NewPostgres(config.PostgresConfig{
		Host: "127.0.0.1", Port: 1, Database: "retention", User: "u",
		MaxConnections: 2, MaxIdle: 1, SSLMode: "disable",
	})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 2, client.GetDB().Stats().MaxOpenConnections)
}

func TestRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))
	require.NoError(t, client.GetClient().Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))

	mr.Close()
	assert.Error(t, client.Ping(context.Background()))
}
