package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content represents the smallest unit of learning material within a module.
// Payload is opaque to the progress engine (reading body, task/form definition).
type Content struct {
	gorm.Model
	ModuleID   uint           `json:"module_id" gorm:"index;not null"`
	Title      string         `json:"title"`
	Kind       string         `json:"kind" gorm:"default:'READING'"` // READING, TASK
	Payload    datatypes.JSON `json:"payload"`
	IsTask     bool           `json:"is_task" gorm:"default:false"`
	Weight     float64        `json:"weight" gorm:"default:1"` // snapshot only; every item counts equally
	OrderIndex int            `json:"order_index" gorm:"default:0"`
	IsDeleted  bool           `gorm:"default:false"`
}
