package database

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
)

func TestConnect(t *testing.T) {
	t.Run("Sqlite", func(t *testing.T) {
		db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)
		assert.Equal(t, "sqlite", db.Dialector.Name())
	})

	t.Run("UnsupportedDriver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("InvalidMysqlConnection", func(t *testing.T) {
		cfg := Config{
			Driver:         "mysql",
			Host:           "127.0.0.1",
			Port:           1, // nothing listens here
			User:           "root",
			Password:       "p@ss:word",
			Name:           "telemetry",
			TimeoutSeconds: 1,
		}
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestConnectOptional_Disabled(t *testing.T) {
	db, err := ConnectOptional(Config{Enabled: false, Driver: "mysql"})
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Nil(t, db)
}

func TestOpen_Mysql(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	// gorm pings on open, Open pings again within its timeout
	mock.ExpectPing()
	mock.ExpectPing()

	db, err := Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "mysql", db.Dialector.Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_PingFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("gone away"))

	db, err := Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), time.Second)
	assert.Error(t, err)
	assert.Nil(t, db)
}
