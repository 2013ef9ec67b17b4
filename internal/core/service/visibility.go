package service

import (
	"context"
	"fmt"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

// CategoryVisibility mirrors the platform's read rules: admins see
// everything, private messages are visible to participants, and category
// topics to members of the category's read groups (everyone when unset).
type CategoryVisibility struct {
	directory ports.PlatformDirectory
}

func NewCategoryVisibility(directory ports.PlatformDirectory) *CategoryVisibility {
	return &CategoryVisibility{directory: directory}
}

func (v *CategoryVisibility) CanSee(ctx context.Context, user *domain.User, topic *domain.Topic) (bool, error) {
	if user == nil || topic == nil {
		return false, nil
	}
	if user.Admin {
		return true, nil
	}
	if topic.Deleted {
		return false, nil
	}
	if topic.PrivateMessage {
		for _, id := range topic.ParticipantIDs {
			if id == user.ID {
				return true, nil
			}
		}
		return false, nil
	}
	if topic.CategoryID == "" {
		return true, nil
	}

	categories, err := v.directory.FindCategories(ctx, []string{topic.CategoryID})
	if err != nil {
		return false, fmt.Errorf("load category: %w", err)
	}
	category, ok := categories[topic.CategoryID]
	if !ok || len(category.ReadGroupIDs) == 0 {
		return true, nil
	}
	return user.InAnyGroup(category.ReadGroupIDs), nil
}
