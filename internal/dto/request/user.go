package request

type CreateUserRequest struct {
	FullName        string `json:"full_name" validate:"required,max=100"`
	Username        string `json:"username" validate:"required,min=3,max=50,username"`
	Email           string `json:"email" validate:"required,email,max=200"`
	Role            string `json:"role" validate:"omitempty,oneof=Administrator Veterinarian Receptionist"`
	Active          *bool  `json:"active"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// UpdateUserRequest replaces the editable fields. An empty Password keeps
// the current hash.
type UpdateUserRequest struct {
	FullName        string `json:"full_name" validate:"required,max=100"`
	Username        string `json:"username" validate:"required,min=3,max=50,username"`
	Email           string `json:"email" validate:"required,email,max=200"`
	Role            string `json:"role" validate:"required,oneof=Administrator Veterinarian Receptionist"`
	Active          bool   `json:"active"`
	Password        string `json:"password" validate:"omitempty,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}
