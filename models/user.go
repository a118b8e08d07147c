package models

// User roles as issued by the CRVO backend in the token's role claim.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// UserAccount represents a client or staff account. Accounts are owned
// entirely by the backend; this service only lists them and triggers
// password resets.
type UserAccount struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Role            string `json:"role"` // "admin" or "member"
	PasswordChanged bool   `json:"passwordChanged"`
}
