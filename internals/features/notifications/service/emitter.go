package service

import (
	"devluck_backend/internals/features/notifications/dto"
)

// Emitter adalah kontrak pengiriman notifikasi best-effort.
// Implementasi produksi: *Notifier.
type Emitter interface {
	Enqueue(input dto.CreateNotificationInput)
}

var _ Emitter = (*Notifier)(nil)
