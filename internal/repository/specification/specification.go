package specification

import "gorm.io/gorm"

// Specification is a composable query fragment applied by GORM repositories.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
