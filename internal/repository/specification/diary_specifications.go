package specification

import (
	"time"

	"gorm.io/gorm"
)

// EntryDateBetween is inclusive on both ends.
type EntryDateBetween struct {
	From time.Time
	To   time.Time
}

func (s EntryDateBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entry_date >= ? AND entry_date <= ?", s.From, s.To)
}
