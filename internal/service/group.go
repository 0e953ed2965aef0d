package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/bucketlist/internal/apperror"
	"github.com/sakif/bucketlist/internal/model"
	"github.com/sakif/bucketlist/internal/repository"
)

// MaxGroupNameLength matches the original schema's column width.
const MaxGroupNameLength = 100

// GroupService handles shared bucket list groups. Groups are deliberately
// NOT owner-scoped: any authenticated user may create one, assign their own
// items to it, and view the combined items of any group. Only item
// manipulation stays private to the item's owner.
type GroupService struct {
	groups repository.GroupRepository
	items  repository.ItemRepository
	logger *slog.Logger
}

// NewGroupService creates a new GroupService.
func NewGroupService(groups repository.GroupRepository, items repository.ItemRepository, logger *slog.Logger) *GroupService {
	return &GroupService{
		groups: groups,
		items:  items,
		logger: logger,
	}
}

// Create adds a new named group. Names are globally unique; a duplicate
// surfaces as ErrConflict.
func (s *GroupService) Create(ctx context.Context, name string) (*model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "group name is required")
	}
	if len(name) > MaxGroupNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("group name must be %d characters or less", MaxGroupNameLength))
	}

	group := &model.Group{Name: name}
	if err := s.groups.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to create group",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating group: %w", err)
	}

	s.logger.Info("group created",
		slog.String("id", group.ID),
		slog.String("name", group.Name),
	)

	return group, nil
}

// List returns all groups.
func (s *GroupService) List(ctx context.Context) ([]model.Group, error) {
	groups, err := s.groups.ListGroups(ctx)
	if err != nil {
		s.logger.Error("failed to list groups", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	return groups, nil
}

// Items returns the group and every item assigned to it, across all owners.
// This is the shared view: reading is open to any authenticated user.
func (s *GroupService) Items(ctx context.Context, groupID string) (*model.Group, []model.BucketListItem, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return nil, nil, apperror.ValidationFailed("id", "group ID is required")
	}

	group, err := s.groups.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.items.ListItemsByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("failed to list group items",
			slog.String("groupID", groupID),
			slog.String("error", err.Error()),
		)
		return nil, nil, fmt.Errorf("listing group items: %w", err)
	}

	return group, items, nil
}
