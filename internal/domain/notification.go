package domain

import "time"

type Notification struct {
	ID          string           `json:"id"`
	UserEmail   string           `json:"user_email"`
	Type        NotificationType `json:"type"`
	ReferenceID string           `json:"reference_id"`
	ProjectID   string           `json:"project_id"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Priority    Priority         `json:"priority"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}

// User is the authenticated operator of the application.
type User struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
