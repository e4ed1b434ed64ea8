package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/todo-list-api/internal/utils"
)

// Paginate applies skip/limit windowing to a GORM query
func Paginate(params utils.ListParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Skip).Limit(params.Limit)
	}
}
