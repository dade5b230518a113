package model

import "time"

// AuthProvider names the sign-in flow.
type AuthProvider string

const (
	AuthProviderGoogle AuthProvider = "google"
	AuthProviderEmail  AuthProvider = "email"
)

// AuthRedirect is where the browser has to go to finish an OAuth sign-in.
type AuthRedirect struct {
	Provider   AuthProvider `json:"provider"`
	URL        string       `json:"url"`
	RedirectTo string       `json:"redirect_to"`
}

// OTPDispatch confirms that a one-time passcode link was sent.
type OTPDispatch struct {
	Provider   AuthProvider `json:"provider"`
	Email      string       `json:"email"`
	RedirectTo string       `json:"redirect_to"`
}

type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone,omitempty"`
	Role         string         `json:"role,omitempty"`
	AppMetadata  map[string]any `json:"app_metadata,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	LastSignInAt *time.Time     `json:"last_sign_in_at,omitempty"`
}

// Provider reports how the user last signed in, from app_metadata.provider.
func (u *User) Provider() AuthProvider {
	if u == nil || u.AppMetadata == nil {
		return ""
	}
	p, _ := u.AppMetadata["provider"].(string)
	return AuthProvider(p)
}
