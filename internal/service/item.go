package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/bucketlist/internal/apperror"
	"github.com/sakif/bucketlist/internal/model"
	"github.com/sakif/bucketlist/internal/repository"
)

// Field limits, matching the column widths of the original schema.
const (
	MaxItemNameLength    = 100
	MaxDescriptionLength = 500
)

// completionDateLayout is the only accepted form for target dates.
const completionDateLayout = "2006-01-02"

// ItemForm carries the three user-editable fields of an item plus the
// optional group assignment, exactly as they arrive from the add and edit
// forms. CompletionDate and GroupID are raw strings here; the service parses
// and validates them.
type ItemForm struct {
	Name           string
	Description    string
	CompletionDate string // "YYYY-MM-DD" or empty
	GroupID        string // group ID or empty
}

// ItemService handles the business logic for bucket list items. Every
// operation is scoped to the owning user taken from the session — the user
// ID is a parameter on each method and is never read from the form.
type ItemService struct {
	items  repository.ItemRepository
	logger *slog.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(items repository.ItemRepository, logger *slog.Logger) *ItemService {
	return &ItemService{
		items:  items,
		logger: logger,
	}
}

// List returns all of userID's items.
func (s *ItemService) List(ctx context.Context, userID string) ([]model.BucketListItem, error) {
	items, err := s.items.ListItemsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list items",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// Get returns a single item owned by userID. A foreign or unknown ID is
// ErrNotFound.
func (s *ItemService) Get(ctx context.Context, id, userID string) (*model.BucketListItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "item ID is required")
	}
	return s.items.GetItemByID(ctx, id, userID)
}

// Create validates the form and saves a new item owned by userID.
func (s *ItemService) Create(ctx context.Context, userID string, form ItemForm) (*model.BucketListItem, error) {
	item := &model.BucketListItem{UserID: userID}
	if err := applyForm(item, form); err != nil {
		return nil, err
	}

	if err := s.items.CreateItem(ctx, item); err != nil {
		s.logger.Error("failed to create item",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating item: %w", err)
	}

	s.logger.Info("item created",
		slog.String("id", item.ID),
		slog.String("userID", userID),
	)

	return item, nil
}

// Update overwrites the mutable fields of an existing item. The lookup and
// the write are both owner-scoped, so editing someone else's item — or a
// nonexistent one — fails with ErrNotFound before anything changes.
func (s *ItemService) Update(ctx context.Context, id, userID string, form ItemForm) (*model.BucketListItem, error) {
	item, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := applyForm(item, form); err != nil {
		return nil, err
	}

	if err := s.items.UpdateItem(ctx, item); err != nil {
		s.logger.Error("failed to update item",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating item: %w", err)
	}

	s.logger.Info("item updated",
		slog.String("id", item.ID),
		slog.String("userID", userID),
	)

	return item, nil
}

// Delete removes an item owned by userID. ErrNotFound for unknown or
// foreign IDs.
func (s *ItemService) Delete(ctx context.Context, id, userID string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "item ID is required")
	}

	if err := s.items.DeleteItem(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("item deleted",
		slog.String("id", id),
		slog.String("userID", userID),
	)
	return nil
}

// applyForm validates the submitted fields and writes them onto item.
// Ownership and creation time are never touched here.
func applyForm(item *model.BucketListItem, form ItemForm) error {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return apperror.ValidationFailed("name", "item name is required")
	}
	if len(name) > MaxItemNameLength {
		return apperror.ValidationFailed("name",
			fmt.Sprintf("item name must be %d characters or less", MaxItemNameLength))
	}

	description := strings.TrimSpace(form.Description)
	if len(description) > MaxDescriptionLength {
		return apperror.ValidationFailed("description",
			fmt.Sprintf("description must be %d characters or less", MaxDescriptionLength))
	}

	completionDate, err := parseCompletionDate(form.CompletionDate)
	if err != nil {
		return err
	}

	item.Name = name
	item.Description = description
	item.CompletionDate = completionDate

	if groupID := strings.TrimSpace(form.GroupID); groupID != "" {
		item.GroupID = &groupID
	} else {
		item.GroupID = nil
	}

	return nil
}

// parseCompletionDate turns the form value into an optional date. An empty
// string means "no target date" and maps to nil; anything else must parse as
// YYYY-MM-DD.
func parseCompletionDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(completionDateLayout, raw)
	if err != nil {
		return nil, apperror.ValidationFailed("completion_date",
			"completion date must be in YYYY-MM-DD form")
	}
	return &t, nil
}
