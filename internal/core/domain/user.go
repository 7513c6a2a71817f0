package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

// User models an account holder. The password hash never leaves the
// process: it is excluded from JSON and from PublicProfile.
type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password,omitempty"`
	Avatar       string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Bio          string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Location     string             `json:"location,omitempty" bson:"location,omitempty"`
	Website      string             `json:"website,omitempty" bson:"website,omitempty"`
	LinkedIn     string             `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	GitHub       string             `json:"github,omitempty" bson:"github,omitempty"`
	AuthProvider string             `json:"authProvider" bson:"authProvider"`
	GoogleID     string             `json:"-" bson:"googleId,omitempty"`
	LastLogin    *time.Time         `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	Timestamps   `bson:",inline"`
}

// PublicProfile is the client-facing projection of a User.
type PublicProfile struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Avatar       string     `json:"avatar,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Location     string     `json:"location,omitempty"`
	Website      string     `json:"website,omitempty"`
	LinkedIn     string     `json:"linkedin,omitempty"`
	GitHub       string     `json:"github,omitempty"`
	AuthProvider string     `json:"authProvider"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ToPublicProfile strips credentials and provider identifiers from u.
func ToPublicProfile(u *User) *PublicProfile {
	if u == nil {
		return nil
	}
	return &PublicProfile{
		ID:           u.ID.Hex(),
		Name:         u.Name,
		Email:        u.Email,
		Avatar:       u.Avatar,
		Bio:          u.Bio,
		Phone:        u.Phone,
		Location:     u.Location,
		Website:      u.Website,
		LinkedIn:     u.LinkedIn,
		GitHub:       u.GitHub,
		AuthProvider: u.AuthProvider,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
	}
}

// ProfileUpdate carries the user-editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name     *string `json:"name" bson:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Avatar   *string `json:"avatar" bson:"avatar,omitempty" validate:"omitempty,url"`
	Bio      *string `json:"bio" bson:"bio,omitempty" validate:"omitempty,max=500"`
	Phone    *string `json:"phone" bson:"phone,omitempty" validate:"omitempty,max=30"`
	Location *string `json:"location" bson:"location,omitempty" validate:"omitempty,max=100"`
	Website  *string `json:"website" bson:"website,omitempty" validate:"omitempty,url"`
	LinkedIn *string `json:"linkedin" bson:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub   *string `json:"github" bson:"github,omitempty" validate:"omitempty,url"`
}
