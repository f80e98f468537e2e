package record

import (
	"github.com/vyom/tryon-store/internal/core/domain"
)

// NewSessionStore returns the current_session slot. It satisfies
// ports.SessionStore.
func NewSessionStore(s *Store) *Slot[domain.User] {
	return NewSlot[domain.User](s, SlotSession)
}

// NewPhotoStore returns the saved_try_on_photo slot. It satisfies
// ports.PhotoStore.
func NewPhotoStore(s *Store) *Slot[domain.Photo] {
	return NewSlot[domain.Photo](s, SlotTryOnPhoto)
}
