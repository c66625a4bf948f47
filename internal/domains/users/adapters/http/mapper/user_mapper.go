package mapper

import (
	"time"

	userdomain "github.com/Apurer/go-storefront-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-storefront-api/internal/domains/users/ports"
)

// User is the public user payload. The password hash never leaves the domain.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Registration is the sign-up form.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func ToRegisterInput(r Registration) userports.RegisterInput {
	return userports.RegisterInput{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

func FromDomainUser(user *userdomain.User) *User {
	if user == nil {
		return nil
	}
	return &User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
}
