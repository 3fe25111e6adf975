package models

import "time"

// UserHotel assigns a staff account to a hotel. Non-admin users may only
// read data for hotels they are assigned to.
type UserHotel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_user_hotel,unique" json:"user_id"`
	HotelID   uint      `gorm:"not null;index:idx_user_hotel,unique" json:"hotel_id"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hotel Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}

// TableName specifies the table name for UserHotel model
func (UserHotel) TableName() string {
	return "user_hotels"
}
