// Package repository implements persistence for the five entity collections
// over an injected GORM handle. Repositories never reach for global state;
// the database handle is passed in at construction.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced id or slug does not exist.
var ErrNotFound = errors.New("record not found")

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
