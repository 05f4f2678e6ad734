package models

import "time"

const (
	RoleCustomer = "customer"
	RoleFarmer   = "farmer"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:191"`
	Password  string    `json:"-"`
	Role      string    `json:"role" gorm:"size:16"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

type SignupData struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=customer farmer"`
	Location string `json:"location"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=customer farmer"`
}
