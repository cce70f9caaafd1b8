package auth

// Roles. STAFF uploads and edits menus for their halls; ADMIN reviews
// and publishes.
const (
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}
