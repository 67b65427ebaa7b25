package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"devluck_backend/internals/features/notifications/dto"
	"devluck_backend/internals/features/notifications/model"
)

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	return db, mock, sqlDB
}

func TestNotifier_WritesEnqueuedNotification(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	userID := uuid.New()
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"notification_id"}).AddRow(uuid.New()))

	n := NewNotifier(db, 8)
	n.Enqueue(dto.CreateNotificationInput{
		UserID:  userID,
		Type:    model.TypeDisputeResolved,
		Title:   "Dispute resolved",
		Message: "Your dispute has been resolved",
		Metadata: map[string]any{
			"disputeId": uuid.New(),
		},
	})
	n.Close()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifier_WriteFailureDoesNotPropagate(t *testing.T) {
	db, mock, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnError(sql.ErrConnDone)

	n := NewNotifier(db, 8)
	n.Enqueue(dto.CreateNotificationInput{
		UserID:  uuid.New(),
		Type:    model.TypeContractCreated,
		Title:   "Contract created",
		Message: "A new contract has been created for you",
	})
	// Close menunggu worker selesai; error hanya tercatat di log.
	n.Close()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifier_DropsWhenQueueFull(t *testing.T) {
	db, _, sqlDB := openMockDB(t)
	defer sqlDB.Close()

	n := &Notifier{
		db:    db,
		queue: make(chan model.NotificationModel, 1),
		done:  make(chan struct{}),
	}
	// Worker sengaja tidak dijalankan supaya antrian tidak terkuras.
	n.queue <- model.NotificationModel{}

	done := make(chan struct{})
	go func() {
		n.Enqueue(dto.CreateNotificationInput{UserID: uuid.New(), Type: model.TypeContractUpdated})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
	assert.Len(t, n.queue, 1)
}
