package model

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"index"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:hashed_password"`
	Roles        []Role `json:"roles,omitempty" gorm:"many2many:user_roles"`
}

// HasRole reports whether the user's preloaded role memberships include name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

type Role struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}
