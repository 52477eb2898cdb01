package domain

import "time"

const (
	RoleFarmer   = "farmer"
	RoleOperator = "operator"
)

// User is the shared identity record. Authentication lives outside this
// service; handlers only see the verified subject id and roles from the
// token, and the repositories read users for display and notification.
type User struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile,omitempty"`
	Roles     []string  `json:"roles"`
	CreatedOn time.Time `json:"created_on"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
