package model

// ListKind names one of the four edge lists stored on a channel
type ListKind string

const (
	FollowerList   ListKind = "follower_list"
	FollowedList   ListKind = "followed_list"
	BannedList     ListKind = "banned_list"
	BannedFromList ListKind = "banned_from_list"
)

// ListKinds is every edge list in cascade order
var ListKinds = []ListKind{FollowerList, FollowedList, BannedList, BannedFromList}

// Relation is a symmetric relation type. The actor holds the subject's ID in
// ActorList and the subject holds the actor's ID in SubjectList.
type Relation struct {
	Name        string
	ActorList   ListKind
	SubjectList ListKind
}

var (
	// Follow: actor is the follower, subject the followed channel
	Follow = Relation{Name: "follow", ActorList: FollowedList, SubjectList: FollowerList}
	// Ban: actor is the judge, subject the victim
	Ban = Relation{Name: "ban", ActorList: BannedList, SubjectList: BannedFromList}
)

// Relations lists every supported relation type
var Relations = []Relation{Follow, Ban}

// Mirror returns the list on the other endpoint that must hold the reciprocal ID
func (k ListKind) Mirror() ListKind {
	switch k {
	case FollowerList:
		return FollowedList
	case FollowedList:
		return FollowerList
	case BannedList:
		return BannedFromList
	case BannedFromList:
		return BannedList
	}
	return ""
}

// RelationOf returns the relation a list belongs to and whether the list
// owner plays the actor role in it
func (k ListKind) RelationOf() (Relation, bool) {
	for _, rel := range Relations {
		if rel.ActorList == k {
			return rel, true
		}
		if rel.SubjectList == k {
			return rel, false
		}
	}
	return Relation{}, false
}
