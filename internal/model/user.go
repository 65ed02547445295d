package model

import "github.com/iliyamo/room-booking-admin/internal/listview"

// User is an account listed on the user management screen.  The json tags
// match the users.json fixture.
//
// Fields:
//
//	ID    – unique identifier, assigned by the store on create.
//	Name  – display name.
//	Email – contact address.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UserSchema returns the field table for users.
func UserSchema() *listview.Schema[User] {
	return &listview.Schema[User]{
		Entity: "users",
		Fields: []listview.Field[User]{
			listview.IntField("id", func(u User) int { return u.ID }, nil),
			listview.TextField("name", func(u User) string { return u.Name }, func(u *User, v string) { u.Name = v }),
			listview.TextField("email", func(u User) string { return u.Email }, func(u *User, v string) { u.Email = v }),
		},
		ID:     func(u User) int { return u.ID },
		WithID: func(u User, id int) User { u.ID = id; return u },
		New:    func() User { return User{} },
	}
}
