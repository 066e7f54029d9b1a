package models

// User is a back-office operator account. The password hash never
// leaves the repository layer.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Team      string `json:"team"`
	Title     string `json:"title,omitempty"`
}
