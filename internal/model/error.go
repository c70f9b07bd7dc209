package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")        // 400
	ErrInvalidTransition  = errors.New("invalid transition")      // 409
	ErrConflict           = errors.New("record version conflict") // 409
	ErrUnauthorized       = errors.New("unauthorized user")       // 401
	ErrRecordNotFound     = errors.New("record not found")        // 404
	ErrAttachmentNotFound = errors.New("attachment not found")    // 404
	ErrStoreRead          = errors.New("store read failed")       // 503
	ErrStoreWrite         = errors.New("store write failed")      // 503
	ErrStoreCorrupt       = errors.New("store corrupt")           // 500
	ErrOrphanedAttachment = errors.New("attachment stored without record")
	ErrNotification       = errors.New("notification failed")
)

// OrphanedAttachmentError reports an attachment that was persisted while
// the owning record save failed. It matches both ErrOrphanedAttachment and
// the underlying store error.
type OrphanedAttachmentError struct {
	Path string
	Err  error
}

func (e *OrphanedAttachmentError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrOrphanedAttachment, e.Path, e.Err)
}

func (e *OrphanedAttachmentError) Unwrap() []error {
	return []error{ErrOrphanedAttachment, e.Err}
}
