package catalog

import (
	"github.com/giriraj47/helpstudyabroad/internal/upstream"
)

// User is the directory-listing projection of an upstream user record.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Role      string `json:"role"`
	Country   string `json:"country"`
	Program   string `json:"program"`
	Status    string `json:"status"`
}

// TransformUser maps a raw upstream user to its directory entry.
func TransformUser(u upstream.UserRecord) User {
	country := u.Address.Country
	if country == "" {
		country = "Unknown"
	}
	program := u.Company.Department
	if program == "" {
		program = "General"
	}
	status := "Active"
	if u.ID%3 == 0 {
		status = "Pending"
	}

	return User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Name:      u.FirstName + " " + u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Gender:    u.Gender,
		Role:      u.Role,
		Country:   country,
		Program:   program,
		Status:    status,
	}
}

// UserCache is the users-collection query cache.
type UserCache = Cache[upstream.UserRecord, User]

func NewUserCache(search SearchFunc[upstream.UserRecord]) *UserCache {
	return NewCache(search, TransformUser)
}
