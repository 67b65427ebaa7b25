package service

import (
	"log"
	"sync"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"devluck_backend/internals/features/notifications/dto"
	"devluck_backend/internals/features/notifications/model"
)

// Notifier menulis notifikasi secara best-effort di background worker.
// Enqueue dipanggil SETELAH transaksi utama commit; gagal kirim hanya dicatat
// di log dan tidak pernah menggagalkan operasi utamanya.
type Notifier struct {
	db        *gorm.DB
	queue     chan model.NotificationModel
	done      chan struct{}
	closeOnce sync.Once
}

func NewNotifier(db *gorm.DB, buffer int) *Notifier {
	if buffer <= 0 {
		buffer = 64
	}
	n := &Notifier{
		db:    db,
		queue: make(chan model.NotificationModel, buffer),
		done:  make(chan struct{}),
	}
	go n.worker()
	return n
}

// Enqueue tidak pernah blocking; kalau buffer penuh, notifikasi di-drop dengan log.
func (n *Notifier) Enqueue(input dto.CreateNotificationInput) {
	item := model.NotificationModel{
		NotificationUserID:  input.UserID,
		NotificationType:    input.Type,
		NotificationTitle:   input.Title,
		NotificationMessage: input.Message,
	}
	if len(input.Metadata) > 0 {
		raw, err := sonic.Marshal(input.Metadata)
		if err != nil {
			log.Printf("[ERROR] notification metadata marshal: %v", err)
		} else {
			item.NotificationMetadata = datatypes.JSON(raw)
		}
	}

	select {
	case n.queue <- item:
	default:
		log.Printf("[WARN] notification queue full, dropping type=%s user=%s", input.Type, input.UserID)
	}
}

func (n *Notifier) worker() {
	defer close(n.done)
	for item := range n.queue {
		if err := n.db.Create(&item).Error; err != nil {
			log.Printf("[ERROR] create notification failed type=%s user=%s: %v",
				item.NotificationType, item.NotificationUserID, err)
		}
	}
}

// Close menunggu antrian terkuras lalu menghentikan worker.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		close(n.queue)
		<-n.done
	})
}
