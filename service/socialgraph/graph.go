package socialgraph

import (
	"github.com/pulseclub/go-pulse/service/persist"
)

type adjacencyList map[persist.DBID]map[persist.DBID]bool

// Graph is an undirected view of the accepted friendship edges. It is rebuilt
// wholesale from a flat edge list on every request and never mutated incrementally.
type Graph struct {
	Neighbors adjacencyList `json:"neighbors"`
	Metadata  Metadata      `json:"metadata"`
}

// Metadata carries degree information used by the suggestion rankers
type Metadata struct {
	Degrees    map[persist.DBID]int `json:"degrees"`
	MaxDegree  int                  `json:"max_degree"`
	TotalEdges int                  `json:"total_edges"`
}

// BuildGraph builds an undirected adjacency structure from a flat list of friendship
// edges. Edges whose status is not accepted are skipped; a nil list yields an empty
// graph. Inserts are symmetric, so if b is in Neighbors[a] then a is in Neighbors[b].
func BuildGraph(friendships []persist.Friendship) *Graph {
	neighbors := adjacencyList{}
	degrees := make(map[persist.DBID]int)
	var maxDegree int
	var totalEdges int

	for _, f := range friendships {
		if f.Status != persist.FriendshipStatusAccepted {
			continue
		}
		if _, ok := neighbors[f.UserID]; !ok {
			neighbors[f.UserID] = map[persist.DBID]bool{}
		}
		if _, ok := neighbors[f.FriendID]; !ok {
			neighbors[f.FriendID] = map[persist.DBID]bool{}
		}

		// Set semantics make duplicate edges a no-op
		if !neighbors[f.UserID][f.FriendID] {
			totalEdges++
		}
		neighbors[f.UserID][f.FriendID] = true
		neighbors[f.FriendID][f.UserID] = true

		degrees[f.UserID] = len(neighbors[f.UserID])
		degrees[f.FriendID] = len(neighbors[f.FriendID])
		maxDegree = max(maxDegree, degrees[f.UserID])
		maxDegree = max(maxDegree, degrees[f.FriendID])
	}

	return &Graph{
		Neighbors: neighbors,
		Metadata: Metadata{
			Degrees:    degrees,
			MaxDegree:  maxDegree,
			TotalEdges: totalEdges,
		},
	}
}

// NeighborsOf returns the set of users directly connected to the given user. Users
// absent from the graph get an empty set, not an error.
func (g *Graph) NeighborsOf(userID persist.DBID) map[persist.DBID]bool {
	if g == nil {
		return nil
	}
	return g.Neighbors[userID]
}

// FriendCount returns the number of direct connections the given user has
func (g *Graph) FriendCount(userID persist.DBID) int {
	if g == nil {
		return 0
	}
	return len(g.Neighbors[userID])
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
