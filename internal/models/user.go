package models

import "time"

type User struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	HashedPassword string    `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName    *string   `gorm:"type:varchar(255)" json:"display_name"`
	Avatar         *string   `gorm:"type:varchar(512)" json:"avatar"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Todos []Todo `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
