package entity

import (
	"github.com/uptrace/bun"
)

type Role string

const (
	RoleHead      Role = "head"
	RoleAdmin     Role = "admin"
	RoleMazer     Role = "mazer"
	RoleAssistant Role = "assistant"
	RoleTeacher   Role = "teacher"
	RoleStaff     Role = "staff"
)

var roles = []Role{RoleHead, RoleAdmin, RoleMazer, RoleAssistant, RoleTeacher, RoleStaff}

// Roles returns every role known to the system.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

func (r Role) Valid() bool {
	for _, v := range roles {
		if r == v {
			return true
		}
	}
	return false
}

// Supervises reports whether a marker holding r may record attendance for a
// user holding target. Mazers supervise teachers, assistants supervise staff.
func (r Role) Supervises(target Role) bool {
	switch r {
	case RoleMazer:
		return target == RoleTeacher
	case RoleAssistant:
		return target == RoleStaff
	}
	return false
}

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID         string  `json:"id"         bun:"id,pk"`
	Name       string  `json:"name"       bun:"name"`
	Email      string  `json:"email"      bun:"email"`
	Password   string  `json:"-"          bun:"password"`
	Role       Role    `json:"role"       bun:"role"`
	Department *string `json:"department" bun:"department"`
	IsActive   bool    `json:"isActive"   bun:"is_active"`
}

// Summary is the minimal identity joined onto attendance, schedule and leave rows.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (u User) Summary() *Summary {
	return &Summary{ID: u.ID, Name: u.Name, Role: u.Role}
}

// UserPatch is a partial update. Nil fields are left untouched.
type UserPatch struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	Role       *Role   `json:"role"`
	Department *string `json:"department"`
	IsActive   *bool   `json:"isActive"`
}

// Apply returns u with every non-nil field of p applied.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Department != nil {
		u.Department = p.Department
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	return u
}
