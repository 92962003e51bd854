package models

import "time"

// Staff roles referenced by the lifecycle (waiter on the table, chef on
// the order, cleaner on the cleaning log).
const (
	RoleWaiter  = "waiter"
	RoleChef    = "chef"
	RoleCleaner = "cleaner"
	RoleStaff   = "staff"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);unique" json:"email"`
	Role      string    `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
