package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HeartRate summarizes the heart-rate readings of a single run.
type HeartRate struct {
	Min     int `bson:"min" json:"min"`
	Max     int `bson:"max" json:"max"`
	Average int `bson:"average" json:"average"`
}

// RunningSession is one recorded run. Historical fact, immutable once recorded.
type RunningSession struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"-"`
	Date           time.Time          `bson:"date" json:"date"`
	DistanceKm     float64            `bson:"distanceKm" json:"distance"`
	DurationMin    float64            `bson:"durationMin" json:"duration"`
	CaloriesBurned int                `bson:"caloriesBurned" json:"caloriesBurned"`
	HeartRate      HeartRate          `bson:"heartRate" json:"heartRate"`
	CreatedAt      time.Time          `bson:"createdAt" json:"-"`
}

// Statistics are the dashboard aggregates derived from a user's sessions.
type Statistics struct {
	TotalDistance  float64 `json:"totalDistance"` // km
	TotalDuration  float64 `json:"totalDuration"` // minutes
	TotalSessions  int     `json:"totalSessions"`
	CaloriesBurned int     `json:"caloriesBurned"`
	RestDays       int     `json:"restDays"`
}
