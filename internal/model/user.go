package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleViewer   UserRole = "viewer"
	UserRoleTalent   UserRole = "talent"
	UserRoleIndustry UserRole = "industry"
	UserRoleAdmin    UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleViewer, UserRoleTalent, UserRoleIndustry, UserRoleAdmin:
		return true
	}
	return false
}

// User id 與身分提供者的 user id 相同
type User struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	DisplayName      *string   `json:"displayName" db:"display_name"`
	AvatarURL        *string   `json:"avatarUrl" db:"avatar_url"`
	Role             UserRole  `json:"role" db:"role"`
	IsAdmin          bool      `json:"isAdmin" db:"is_admin"`
	StripeCustomerID *string   `json:"stripeCustomerId" db:"stripe_customer_id"`
	Bio              *string   `json:"bio" db:"bio"`
	InstagramHandle  *string   `json:"instagramHandle" db:"instagram_handle"`
	Website          *string   `json:"website" db:"website"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

type SyncUserRequest struct {
	UserID      string  `json:"userId"`
	Email       string  `json:"email"`
	DisplayName *string `json:"displayName"`
}
