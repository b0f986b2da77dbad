package transfer

type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=255"`
	Role  string `json:"role" validate:"required,oneof=admin publisher reviewer editor"`
}

type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin publisher reviewer editor"`
}
