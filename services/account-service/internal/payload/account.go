package payload

import "time"

type SignupRequest struct {
	Email     string  `json:"email"               validate:"required,email"`
	Password  string  `json:"password"            validate:"required"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

type SignupResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        UserInfo `json:"user"`
}

type UserInfo struct {
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type ProfileUser struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type ProfileResponse struct {
	User    ProfileUser `json:"user"`
	Message string      `json:"message"`
}

type DashboardStats struct {
	TotalLogins int64     `json:"total_logins"`
	LastLogin   time.Time `json:"last_login"`
}

type DashboardData struct {
	RecentActivity []string       `json:"recent_activity"`
	Stats          DashboardStats `json:"stats"`
}

type DashboardResponse struct {
	Message       string        `json:"message"`
	DashboardData DashboardData `json:"dashboard_data"`
}
