package entity

const RoleAdmin = "admin"

// AdminLoginData is taken from a verified bearer token and guards the operator routes.
type AdminLoginData struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
}
