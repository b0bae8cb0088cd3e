package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type txRecord struct {
	ID   int
	Name string
}

func openTestClient(t *testing.T) (*Client, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&txRecord{}))
	return &Client{conn: conn}, conn
}

func countRecords(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Model(&txRecord{}).Count(&count).Error)
	return count
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	client, conn := openTestClient(t)
	before := countRecords(t, conn)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&txRecord{Name: "kept"}).Error
	})
	require.NoError(t, err)
	require.Equal(t, before+1, countRecords(t, conn))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client, conn := openTestClient(t)
	before := countRecords(t, conn)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&txRecord{Name: "discarded"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)
	require.Equal(t, before, countRecords(t, conn))
}

func TestPing(t *testing.T) {
	client, _ := openTestClient(t)
	require.NoError(t, client.Ping(context.Background()))
}

func TestIsUniqueViolation(t *testing.T) {
	require.False(t, IsUniqueViolation(nil, ""))
	require.False(t, IsUniqueViolation(errors.New("connection refused"), ""))

	require.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email"), ""))
	require.True(t, IsUniqueViolation(
		errors.New(`duplicate key value violates unique constraint "users_email_key"`),
		"users_email_key",
	))
}
