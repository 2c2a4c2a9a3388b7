package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          string     `bun:"id,pk,type:varchar(64)"`
	Name        string     `bun:"name,notnull"`
	Email       string     `bun:"email,notnull,unique"`
	Phone       *string    `bun:"phone"`
	Address     *string    `bun:"address"`
	DateOfBirth *time.Time `bun:"date_of_birth"`
	CreatedAt   time.Time  `bun:"created_at,notnull"`
	UpdatedAt   *time.Time `bun:"updated_at"`
	DeletedAt   *time.Time `bun:"deleted_at,soft_delete"`
}

func (u User) Alias() string {
	return "u"
}
