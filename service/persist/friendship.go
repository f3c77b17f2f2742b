package persist

import "time"

// FriendshipStatus is the lifecycle state of a friend request
type FriendshipStatus string

const (
	// FriendshipStatusPending is a request that has been sent but not answered
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted is a confirmed, bidirectional connection
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	// FriendshipStatusDeclined is a request that was rejected
	FriendshipStatusDeclined FriendshipStatus = "declined"
)

// Friendship is a directional friend-request edge. UserID initiated the request;
// once accepted the edge is treated as undirected.
type Friendship struct {
	ID        DBID             `json:"id"`
	UserID    DBID             `json:"user_id"`
	FriendID  DBID             `json:"friend_id"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}
