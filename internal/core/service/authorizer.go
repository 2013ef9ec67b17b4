package service

import "github.com/communiteq/time-registration/internal/core/domain"

// GroupAuthorizer grants time tracking to admins and members of the
// configured groups, and entry edits to admins and the entry's owner.
type GroupAuthorizer struct {
	trackGroups []string
}

func NewGroupAuthorizer(trackGroups []string) *GroupAuthorizer {
	return &GroupAuthorizer{trackGroups: trackGroups}
}

func (a *GroupAuthorizer) CanTrackTime(user *domain.User) bool {
	if user == nil {
		return false
	}
	return user.Admin || user.InAnyGroup(a.trackGroups)
}

func (a *GroupAuthorizer) CanEditEntry(user *domain.User, entry *domain.TimeEntry) bool {
	if user == nil || entry == nil {
		return false
	}
	return user.Admin || entry.UserID == user.ID
}
