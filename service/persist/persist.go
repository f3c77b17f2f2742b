package persist

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

// DBID represents a database ID
type DBID string

// GenerateID generates an application-wide unique ID
func GenerateID() DBID {
	id, err := ksuid.NewRandom()
	if err != nil {
		panic(err)
	}
	return DBID(id.String())
}

func (d DBID) String() string {
	return string(d)
}

// ErrUserNotFound is returned when a user could not be found by its ID
type ErrUserNotFound struct {
	UserID DBID
}

func (e ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found by ID: %s", e.UserID)
}

// ErrChallengeNotFound is returned when a challenge could not be found by its ID
type ErrChallengeNotFound struct {
	ChallengeID DBID
}

func (e ErrChallengeNotFound) Error() string {
	return fmt.Sprintf("challenge not found by ID: %s", e.ChallengeID)
}
