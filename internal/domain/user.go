package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Level type for the user's self-reported running level.
type Level string

const (
	LevelBeginner     Level = "débutant"
	LevelIntermediate Level = "intermédiaire"
	LevelAdvanced     Level = "avancé"
)

// Profile holds the personal information shown on the profile page
// and fed into the coaching prompt.
type Profile struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Age       int    `bson:"age,omitempty" json:"age,omitempty"`
	Gender    string `bson:"gender,omitempty" json:"gender,omitempty"`
	Height    int    `bson:"height,omitempty" json:"height,omitempty"` // cm
	WeightKg  int    `bson:"weightKg,omitempty" json:"weight,omitempty"`
	Level     Level  `bson:"level,omitempty" json:"level,omitempty"`
	Goal      string `bson:"goal,omitempty" json:"goal,omitempty"` // e.g. "courir un 10km"

	// PictureKey is the S3 object key of the profile picture.
	// The API exposes a presigned URL, never the key itself.
	PictureKey string `bson:"pictureKey,omitempty" json:"-"`
}

// User represents an account in the system.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	Profile      Profile            `bson:"profile" json:"profile"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
