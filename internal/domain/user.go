package domain

// User is a console account as returned by the admin endpoints.
type User struct {
	ID         int64    `json:"id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	NomComplet string   `json:"nomComplet"`
	Roles      []string `json:"roles"`
}

// UserCreateRequest creates an account; the password is mandatory here.
type UserCreateRequest struct {
	Username   string   `json:"username" validate:"required,min=3,max=50"`
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required,min=6"`
	NomComplet string   `json:"nomComplet" validate:"required,max=120"`
	Roles      []string `json:"roles" validate:"required,min=1,dive,startswith=ROLE_"`
}

// UserUpdateRequest carries only the fields being changed.
type UserUpdateRequest struct {
	Email      *string  `json:"email,omitempty" validate:"omitempty,email"`
	Password   *string  `json:"password,omitempty" validate:"omitempty,min=6"`
	NomComplet *string  `json:"nomComplet,omitempty" validate:"omitempty,max=120"`
	Roles      []string `json:"roles,omitempty" validate:"omitempty,dive,startswith=ROLE_"`
}
