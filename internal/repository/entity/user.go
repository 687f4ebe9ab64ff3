package entity

import "time"

// User is a read model of the auth service's user table. This service
// never writes to it; it only resolves names and staff recipients.
type User struct {
	Id        int `gorm:"primaryKey"`
	Name      string
	Role      string `gorm:"index"`
	CreatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
