package domain

// User is the read-only view of a platform member.
type User struct {
	ID       string   `json:"id" bson:"_id"`
	Username string   `json:"username" bson:"username"`
	Admin    bool     `json:"admin" bson:"admin"`
	GroupIDs []string `json:"group_ids,omitempty" bson:"group_ids,omitempty"`
}

// InAnyGroup reports whether the user belongs to at least one of groupIDs.
func (u *User) InAnyGroup(groupIDs []string) bool {
	for _, want := range groupIDs {
		for _, have := range u.GroupIDs {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Topic is the discussion thread time is logged against.
type Topic struct {
	ID             string   `json:"id" bson:"_id"`
	Title          string   `json:"title" bson:"title"`
	CategoryID     string   `json:"category_id,omitempty" bson:"category_id,omitempty"`
	PrivateMessage bool     `json:"private_message" bson:"private_message"`
	ParticipantIDs []string `json:"participant_ids,omitempty" bson:"participant_ids,omitempty"`
	Deleted        bool     `json:"deleted" bson:"deleted"`
}

// Category groups topics. An empty ReadGroupIDs list means everyone can read.
type Category struct {
	ID           string   `json:"id" bson:"_id"`
	Name         string   `json:"name" bson:"name"`
	ReadGroupIDs []string `json:"read_group_ids,omitempty" bson:"read_group_ids,omitempty"`
}
