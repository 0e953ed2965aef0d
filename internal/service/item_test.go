package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/sakif/bucketlist/internal/apperror"
	"github.com/sakif/bucketlist/internal/model"
)

// fakeItemRepo is an in-memory repository.ItemRepository that mirrors the
// owner-scoped semantics of the SQLite implementation.
type fakeItemRepo struct {
	items  map[string]*model.BucketListItem
	nextID int
	// set to a non-nil error to simulate a storage failure
	createErr error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*model.BucketListItem), nextID: 1}
}

func (f *fakeItemRepo) CreateItem(ctx context.Context, item *model.BucketListItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	item.ID = "item-" + strconv.Itoa(f.nextID)
	f.nextID++
	item.CreatedAt = time.Now()
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeItemRepo) GetItemByID(ctx context.Context, id, userID string) (*model.BucketListItem, error) {
	item, ok := f.items[id]
	if !ok || item.UserID != userID {
		return nil, apperror.NotFound("item", id)
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemRepo) ListItemsByUser(ctx context.Context, userID string) ([]model.BucketListItem, error) {
	out := []model.BucketListItem{}
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) ListItemsByGroup(ctx context.Context, groupID string) ([]model.BucketListItem, error) {
	out := []model.BucketListItem{}
	for _, item := range f.items {
		if item.GroupID != nil && *item.GroupID == groupID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) UpdateItem(ctx context.Context, item *model.BucketListItem) error {
	existing, ok := f.items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return apperror.NotFound("item", item.ID)
	}
	copied := *item
	copied.CreatedAt = existing.CreatedAt
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeItemRepo) DeleteItem(ctx context.Context, id, userID string) error {
	existing, ok := f.items[id]
	if !ok || existing.UserID != userID {
		return apperror.NotFound("item", id)
	}
	delete(f.items, id)
	return nil
}

func newTestItemService() (*ItemService, *fakeItemRepo) {
	repo := newFakeItemRepo()
	return NewItemService(repo, testLogger()), repo
}

func TestItemCreate(t *testing.T) {
	svc, _ := newTestItemService()

	item, err := svc.Create(context.Background(), "user-1", ItemForm{
		Name:           "Skydive",
		Description:    "somewhere sunny",
		CompletionDate: "2030-01-01",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Ownership comes from the session argument, never from the form
	if item.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", item.UserID, "user-1")
	}
	if item.CompletionDate == nil {
		t.Fatal("CompletionDate = nil, want 2030-01-01")
	}
	want := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	if !item.CompletionDate.Equal(want) {
		t.Errorf("CompletionDate = %v, want %v", item.CompletionDate, want)
	}
}

func TestItemCreate_EmptyDate(t *testing.T) {
	svc, _ := newTestItemService()

	item, err := svc.Create(context.Background(), "user-1", ItemForm{Name: "Skydive"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if item.CompletionDate != nil {
		t.Errorf("CompletionDate = %v, want nil for empty form value", *item.CompletionDate)
	}
}

func TestItemCreate_MalformedDate(t *testing.T) {
	svc, _ := newTestItemService()

	tests := []string{"01-01-2030", "2030/01/01", "not-a-date", "2030-13-40"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", ItemForm{
				Name:           "Skydive",
				CompletionDate: raw,
			})
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create(%q) error = %v, want ErrValidation", raw, err)
			}
		})
	}
}

func TestItemCreate_EmptyName(t *testing.T) {
	svc, _ := newTestItemService()

	_, err := svc.Create(context.Background(), "user-1", ItemForm{Name: "   "})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Create() error = %v, want ErrValidation", err)
	}
}

func TestItemUpdate_RoundTrip(t *testing.T) {
	svc, _ := newTestItemService()

	item, err := svc.Create(context.Background(), "user-1", ItemForm{Name: "Skydive"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Set a date...
	updated, err := svc.Update(context.Background(), item.ID, "user-1", ItemForm{
		Name:           "Skydive",
		CompletionDate: "2025-12-31",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.CompletionDate == nil {
		t.Fatal("CompletionDate = nil after setting it")
	}

	// ...then clear it again with an empty form value
	updated, err = svc.Update(context.Background(), item.ID, "user-1", ItemForm{Name: "Skydive"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.CompletionDate != nil {
		t.Errorf("CompletionDate = %v after clearing, want nil", *updated.CompletionDate)
	}
}

func TestItemUpdate_NotFound(t *testing.T) {
	svc, _ := newTestItemService()

	_, err := svc.Update(context.Background(), "nonexistent", "user-1", ItemForm{Name: "x"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestItemUpdate_ForeignItemIsNotFound(t *testing.T) {
	svc, _ := newTestItemService()

	item, err := svc.Create(context.Background(), "user-1", ItemForm{Name: "Skydive"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Another user addressing the item by ID gets not-found, not forbidden —
	// the item's existence is not revealed.
	_, err = svc.Update(context.Background(), item.ID, "user-2", ItemForm{Name: "stolen"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestItemDelete(t *testing.T) {
	svc, _ := newTestItemService()

	item, err := svc.Create(context.Background(), "user-1", ItemForm{Name: "Skydive"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), item.ID, "user-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	items, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d after delete, want 0", len(items))
	}
}

func TestItemDelete_NotFound(t *testing.T) {
	svc, _ := newTestItemService()

	err := svc.Delete(context.Background(), "nonexistent", "user-1")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestItemCreate_StorageError(t *testing.T) {
	svc, repo := newTestItemService()
	repo.createErr = errors.New("disk full")

	_, err := svc.Create(context.Background(), "user-1", ItemForm{Name: "Skydive"})
	if err == nil {
		t.Fatal("Create() should propagate storage errors")
	}
	// Storage failures are NOT validation errors — the two kinds stay apart
	if errors.Is(err, apperror.ErrValidation) {
		t.Error("storage error reported as validation error")
	}
}
