package auth

// RegisterDTO is the body of POST /auth/register.
type RegisterDTO struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Role      Role   `json:"role" validate:"required,oneof=ADMIN AGENT CLIENT"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

// LoginDTO is accepted as form fields or JSON.
type LoginDTO struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
