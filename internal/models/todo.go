package models

import (
	"strings"
	"time"
)

// tagDelimiter separates entries in the persisted tag string.
const tagDelimiter = ","

// Todo is a single task item. Position is the client-side sort key,
// exposed as "order" on the wire.
type Todo struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	Position    int       `gorm:"not null;default:0" json:"order"`
	Priority    *string   `gorm:"type:varchar(50)" json:"priority"`
	Tags        string    `gorm:"type:varchar(512)" json:"-"`
	OwnerID     uint64    `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// TagList splits the stored delimited tag string into a list.
func (t *Todo) TagList() []string {
	if t.Tags == "" {
		return []string{}
	}
	return strings.Split(t.Tags, tagDelimiter)
}

// SetTagList stores a tag list as a delimited string.
func (t *Todo) SetTagList(tags []string) {
	t.Tags = strings.Join(tags, tagDelimiter)
}
