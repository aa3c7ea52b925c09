package domain

import "time"

// User represents a registered account. The password hash and storage keys
// never leave the backend.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullname"`
	PasswordHash  string    `json:"-"`
	AvatarURL     string    `json:"avatar"`
	AvatarKey     string    `json:"-"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	CoverImageKey string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnerInfo is the public projection of a user attached to owned resources
type OwnerInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar"`
}

// Owner returns the public projection of the user
func (u *User) Owner() *OwnerInfo {
	return &OwnerInfo{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}

// ChannelProfile is a user profile viewed as a channel, with subscription
// aggregates computed relative to the requesting user
type ChannelProfile struct {
	User
	SubscribersCount  int64 `json:"subscribersCount"`
	SubscribedToCount int64 `json:"subscribedToCount"`
	IsSubscribed      bool  `json:"isSubscribed"`
}

// RegisterRequest carries the multipart registration form
type RegisterRequest struct {
	FullName   string
	Username   string
	Email      string
	Password   string
	Avatar     *FileUpload
	CoverImage *FileUpload
}

// LoginRequest carries login credentials; either username or email must be set
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest carries a password change
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// TokenPair is an issued access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult is the login response payload
type LoginResult struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
