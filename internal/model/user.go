package model

// User is a row of the users table. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
}

// NewUser is the registration payload. Password is plain text until the
// user service hashes it.
type NewUser struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (u *NewUser) Validate() error {
	return validateStruct(u)
}
