package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/pkg/database"
	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.New(database.Config{Path: database.MemoryPath}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).Migrate())
	return db
}

func TestNotificationRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db.DB, zap.NewNop())

	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	first := &entity.Delivery{
		InvoiceNumber: "VREB1234",
		Recipient:     "accounts@acme.ae",
		Channel:       entity.ChannelSMTP,
		ArtifactPath:  "/out/invoices/VREB1234.pdf",
		Status:        entity.DeliveryStatusFailed,
		ErrorMessage:  "535 authentication failed",
		AttemptedAt:   base,
	}
	second := &entity.Delivery{
		InvoiceNumber: "VREB1234",
		Recipient:     "accounts@acme.ae",
		Channel:       entity.ChannelSMTP,
		Status:        entity.DeliveryStatusSent,
		AttemptedAt:   base.Add(time.Minute),
	}

	require.NoError(t, repo.Create(nil, first))
	require.NoError(t, repo.Create(nil, second))
	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.GetByInvoiceNumber("VREB1234")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entity.DeliveryStatusFailed, got[0].Status)
	assert.Equal(t, "535 authentication failed", got[0].ErrorMessage)
	assert.Equal(t, "", got[1].ErrorMessage)
	assert.True(t, base.Equal(got[0].AttemptedAt))

	none, err := repo.GetByInvoiceNumber("VREB0000")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNotificationRepository_RecentAndCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db.DB, zap.NewNop())

	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	statuses := []string{entity.DeliveryStatusSent, entity.DeliveryStatusError, entity.DeliveryStatusSent}
	for i, st := range statuses {
		require.NoError(t, repo.Create(nil, &entity.Delivery{
			InvoiceNumber: "VREB000" + string(rune('1'+i)),
			Recipient:     "a@b.ae",
			Channel:       entity.ChannelLark,
			Status:        st,
			AttemptedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := repo.GetRecent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "VREB0003", recent[0].InvoiceNumber)

	counts, err := repo.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, counts[entity.DeliveryStatusSent])
	assert.Equal(t, 1, counts[entity.DeliveryStatusError])
}

func TestNotificationRepository_CreateInTransaction(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db.DB, zap.NewNop())

	err := db.WithTransaction(func(tx *sql.Tx) error {
		return repo.Create(tx, &entity.Delivery{
			InvoiceNumber: "VREB0009",
			Recipient:     "a@b.ae",
			Channel:       entity.ChannelSMTP,
			Status:        entity.DeliveryStatusSent,
		})
	})
	require.NoError(t, err)

	got, err := repo.GetByInvoiceNumber("VREB0009")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.False(t, got[0].AttemptedAt.IsZero())
}
