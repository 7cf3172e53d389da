package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeekLock marks a week closed for pick submission
type WeekLock struct {
	ID       primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Season   int                `json:"season" bson:"season"`
	Week     int                `json:"week" bson:"week"`
	LockedAt time.Time          `json:"locked_at" bson:"locked_at"`
	LockedBy string             `json:"locked_by,omitempty" bson:"locked_by,omitempty"`
}

// WeekLockStatus is the lock state reported to clients
type WeekLockStatus struct {
	Week     int        `json:"week"`
	Locked   bool       `json:"locked"`
	LockedAt *time.Time `json:"locked_at,omitempty"`
	LockedBy string     `json:"locked_by,omitempty"`
}

// Status converts a lock (possibly nil) into a client status
func (l *WeekLock) Status(week int) WeekLockStatus {
	if l == nil {
		return WeekLockStatus{Week: week}
	}
	lockedAt := l.LockedAt
	return WeekLockStatus{
		Week:     week,
		Locked:   true,
		LockedAt: &lockedAt,
		LockedBy: l.LockedBy,
	}
}
