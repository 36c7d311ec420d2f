package models

import "time"

// Cart is keyed by the visitor's cart identifier, normally the session key.
type Cart struct {
	CartID    string     `gorm:"column:cart_id;type:varchar(250);primaryKey"`
	DateAdded time.Time  `gorm:"column:date_added;autoCreateTime"`
	Items     []CartItem `gorm:"foreignKey:CartID;references:CartID;constraint:OnDelete:CASCADE"`
}
