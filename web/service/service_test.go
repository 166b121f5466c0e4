package service

import (
	"os"
	"testing"

	"github.com/cinecache/cinecache/database"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Setenv("CINECACHE_JWT_SECRET", "test-secret")
	removeTestDB()
	require.NoError(t, database.InitDB("test.db"))
}

func teardown() {
	if db, err := database.GetDB().DB(); err == nil {
		db.Close()
	}
	removeTestDB()
}

func removeTestDB() {
	for _, name := range []string{"test.db", "test.db-wal", "test.db-shm"} {
		os.Remove(name)
	}
}
