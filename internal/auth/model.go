package auth

import "time"

// User is the stored identity record. Email and username are unique and kept
// lowercase; the password only ever exists as a salt-mixed bcrypt hash.
type User struct {
	UUID         string
	Email        string
	FirstName    string
	LastName     string
	Username     string
	Salt         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the response shape for a user, without credential material.
// AccessToken is only populated on registration.
type PublicUser struct {
	UUID        string       `json:"uuid"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Username    string       `json:"username"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	AccessToken *AccessToken `json:"access_token,omitempty"`
}

// Public strips credential material from a stored user.
func (u User) Public() PublicUser {
	return PublicUser{
		UUID:      u.UUID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CredentialPair is the transient salt+hash produced at registration time. It
// exists only long enough to be persisted into the user record.
type CredentialPair struct {
	Salt string
	Hash string
}

// AccessToken is the issued token value handed to clients. TokenType is the
// scheme label clients use as the Authorization header prefix.
type AccessToken struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Username  string
}
