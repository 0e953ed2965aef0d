package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/bucketlist/internal/apperror"
	"github.com/sakif/bucketlist/internal/model"
)

// createTestItem creates an item for the given user and fails the test if it
// errors.
func createTestItem(t *testing.T, db *DB, userID, name string) *model.BucketListItem {
	t.Helper()
	item := &model.BucketListItem{
		Name:   name,
		UserID: userID,
	}
	if err := db.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return item
}

func TestCreateItem(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	date := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	item := &model.BucketListItem{
		Name:           "Skydive",
		Description:    "somewhere sunny",
		CompletionDate: &date,
		UserID:         user.ID,
	}

	if err := db.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}

	if item.ID == "" {
		t.Error("CreateItem() did not set item.ID")
	}
	if item.CreatedAt.IsZero() {
		t.Error("CreateItem() did not set item.CreatedAt")
	}
}

func TestGetItemByID_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	date := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	item := &model.BucketListItem{
		Name:           "Skydive",
		Description:    "somewhere sunny",
		CompletionDate: &date,
		UserID:         user.ID,
	}
	if err := db.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}

	found, err := db.GetItemByID(context.Background(), item.ID, user.ID)
	if err != nil {
		t.Fatalf("GetItemByID() error = %v", err)
	}

	if found.Name != "Skydive" {
		t.Errorf("Name = %q, want %q", found.Name, "Skydive")
	}
	if found.CompletionDate == nil {
		t.Fatal("CompletionDate = nil, want 2030-01-01")
	}
	if !found.CompletionDate.Equal(date) {
		t.Errorf("CompletionDate = %v, want %v", found.CompletionDate, date)
	}
	if found.GroupID != nil {
		t.Errorf("GroupID = %v, want nil", *found.GroupID)
	}
}

func TestGetItemByID_WrongOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	mallory := createTestUser(t, db, "mallory")

	item := createTestItem(t, db, alice.ID, "Skydive")

	// The item exists, but mallory doesn't own it — must look not-found,
	// indistinguishable from a nonexistent ID.
	_, err := db.GetItemByID(context.Background(), item.ID, mallory.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetItemByID() error = %v, want ErrNotFound", err)
	}
}

func TestListItemsByUser(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	createTestItem(t, db, alice.ID, "Skydive")
	createTestItem(t, db, alice.ID, "See the northern lights")
	createTestItem(t, db, bob.ID, "Run a marathon")

	items, err := db.ListItemsByUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListItemsByUser() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.UserID != alice.ID {
			t.Errorf("item %q has UserID %q, want %q", item.Name, item.UserID, alice.ID)
		}
	}
}

func TestListItemsByUser_Empty(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	items, err := db.ListItemsByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListItemsByUser() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}

func TestUpdateItem(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Skydive")

	date := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	item.Name = "Skydive over the alps"
	item.Description = "tandem is fine"
	item.CompletionDate = &date

	if err := db.UpdateItem(context.Background(), item); err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}

	found, err := db.GetItemByID(context.Background(), item.ID, user.ID)
	if err != nil {
		t.Fatalf("GetItemByID() error = %v", err)
	}
	if found.Name != "Skydive over the alps" {
		t.Errorf("Name = %q, want updated name", found.Name)
	}
	if found.CompletionDate == nil || !found.CompletionDate.Equal(date) {
		t.Errorf("CompletionDate = %v, want %v", found.CompletionDate, date)
	}
}

func TestUpdateItem_ClearCompletionDate(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	date := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	item := &model.BucketListItem{Name: "Skydive", CompletionDate: &date, UserID: user.ID}
	if err := db.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}

	// Clearing the date must store NULL, not a zero time
	item.CompletionDate = nil
	if err := db.UpdateItem(context.Background(), item); err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}

	found, err := db.GetItemByID(context.Background(), item.ID, user.ID)
	if err != nil {
		t.Fatalf("GetItemByID() error = %v", err)
	}
	if found.CompletionDate != nil {
		t.Errorf("CompletionDate = %v, want nil", *found.CompletionDate)
	}
}

func TestUpdateItem_NotFound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	item := &model.BucketListItem{ID: "nonexistent", Name: "ghost", UserID: user.ID}
	err := db.UpdateItem(context.Background(), item)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateItem() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteItem(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Skydive")

	if err := db.DeleteItem(context.Background(), item.ID, user.ID); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}

	_, err := db.GetItemByID(context.Background(), item.ID, user.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetItemByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestDeleteItem_WrongOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	mallory := createTestUser(t, db, "mallory")
	item := createTestItem(t, db, alice.ID, "Skydive")

	err := db.DeleteItem(context.Background(), item.ID, mallory.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("DeleteItem() error = %v, want ErrNotFound", err)
	}

	// Alice's item must be untouched
	if _, err := db.GetItemByID(context.Background(), item.ID, alice.ID); err != nil {
		t.Errorf("item disappeared after failed cross-user delete: %v", err)
	}
}

func TestItemGroupAssignment(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	group := &model.Group{Name: "Travel 2030"}
	if err := db.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}

	item := &model.BucketListItem{Name: "Skydive", UserID: user.ID, GroupID: &group.ID}
	if err := db.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}

	items, err := db.ListItemsByGroup(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("ListItemsByGroup() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].GroupID == nil || *items[0].GroupID != group.ID {
		t.Errorf("GroupID = %v, want %q", items[0].GroupID, group.ID)
	}
}
