package model

import "time"

// AdminUser 后台管理员
type AdminUser struct {
	ID        int64      `db:"id" json:"id"`
	Email     string     `db:"email" json:"email"`
	Username  string     `db:"username" json:"username"`
	Password  string     `db:"password" json:"-"`
	Name      string     `db:"name" json:"name"`
	Role      string     `db:"role" json:"role"`
	IsActive  bool       `db:"is_active" json:"isActive"`
	LastLogin *time.Time `db:"last_login" json:"lastLogin"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}
