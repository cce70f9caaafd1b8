package hall

// Hall statuses. New halls wait for admin approval before their menus
// become public.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

// Hall is a dining location menus are uploaded for.
type Hall struct {
	ID      int    `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Campus  string `json:"campus"`
	Status  string `json:"status"`
}
