package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/portfolio-backend/models"
)

func TestKeepAliveAddAndCount(t *testing.T) {
	repo := NewKeepAliveRepo(newTestDB(t))

	require.NoError(t, repo.Add(&models.KeepAliveLog{Note: "keep-alive ping"}))
	require.NoError(t, repo.Add(&models.KeepAliveLog{Note: "keep-alive ping"}))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestKeepAliveDeleteOlderThan(t *testing.T) {
	repo := NewKeepAliveRepo(newTestDB(t))

	now := time.Now()
	old := &models.KeepAliveLog{Note: "keep-alive ping", CreatedAt: now.Add(-8 * 24 * time.Hour)}
	require.NoError(t, repo.Add(old))
	fresh := &models.KeepAliveLog{Note: "keep-alive ping", CreatedAt: now}
	require.NoError(t, repo.Add(fresh))

	removed, err := repo.DeleteOlderThan(now.Add(-7 * 24 * time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
