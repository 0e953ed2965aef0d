package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/bucketlist/internal/apperror"
	"github.com/sakif/bucketlist/internal/auth"
	"github.com/sakif/bucketlist/internal/model"
	"github.com/sakif/bucketlist/internal/service"
)

// ItemHandler serves the bucket list CRUD pages. Every route here sits
// behind auth.RequireAuth, so the user ID is always present in the context.
type ItemHandler struct {
	items    *service.ItemService
	groups   *service.GroupService
	renderer *Renderer
	logger   *slog.Logger
}

// NewItemHandler creates an ItemHandler. The group service is needed for the
// group dropdown on the add and edit forms.
func NewItemHandler(items *service.ItemService, groups *service.GroupService, renderer *Renderer, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{items: items, groups: groups, renderer: renderer, logger: logger}
}

type listPage struct {
	Title  string
	Flash  *Flash
	Items  []model.BucketListItem
	Groups []model.Group
}

type editPage struct {
	Title  string
	Flash  *Flash
	Item   *model.BucketListItem
	Groups []model.Group
	// SelectedGroupID is the item's group id flattened to a plain string
	// so the template can compare it against each option.
	SelectedGroupID string
}

// HandleList shows the caller's bucket list.
//
// HTTP: GET /
func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	items, err := h.items.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Groups feed the "add to group" dropdown; an empty slice just renders
	// no options.
	groups, err := h.groups.List(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "index.html", listPage{
		Title:  "My Bucket List",
		Flash:  popFlash(w, r),
		Items:  items,
		Groups: groups,
	})
}

// HandleAdd creates a new item from the form on the list page.
//
// HTTP: POST /items
//
// Every failure — malformed date, empty name, storage trouble — lands back
// on the list with the same generic notice. The error kinds stay distinct
// internally (and in the logs), the browser just doesn't get a taxonomy.
func (h *ItemHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/", "error", "Error! There was a problem adding the item.")
		return
	}

	_, err := h.items.Create(r.Context(), userID, itemFormFromRequest(r))
	if err != nil {
		if !errors.Is(err, apperror.ErrValidation) {
			h.logger.Error("add item failed", slog.String("error", err.Error()))
		}
		redirectWithFlash(w, r, "/", "error", "Error! There was a problem adding the item.")
		return
	}

	redirectWithFlash(w, r, "/", "success", "Bucket List item added successfully!")
}

// HandleEditForm shows the edit form, prefilled with the item's current
// values.
//
// HTTP: GET /items/{id}/edit
//
// An unknown id — including someone else's item — is a plain 404, not a
// flash-and-redirect: the caller addressed a thing that does not exist for
// them.
func (h *ItemHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	item, err := h.items.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrValidation) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	groups, err := h.groups.List(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	selected := ""
	if item.GroupID != nil {
		selected = *item.GroupID
	}

	h.renderer.Render(w, http.StatusOK, "edit.html", editPage{
		Title:           "Edit " + item.Name,
		Item:            item,
		Groups:          groups,
		SelectedGroupID: selected,
	})
}

// HandleEdit overwrites an item's mutable fields.
//
// HTTP: POST /items/{id}/edit
func (h *ItemHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/", "error", "Error! There was a problem updating the item.")
		return
	}

	_, err := h.items.Update(r.Context(), r.PathValue("id"), userID, itemFormFromRequest(r))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if !errors.Is(err, apperror.ErrValidation) {
			h.logger.Error("edit item failed", slog.String("error", err.Error()))
		}
		redirectWithFlash(w, r, "/", "error", "Error! There was a problem updating the item.")
		return
	}

	redirectWithFlash(w, r, "/", "success", "Bucket List item updated successfully!")
}

// HandleDelete removes an item.
//
// HTTP: POST /items/{id}/delete
//
// POST, not GET: browsers prefetch GET links, and a prefetched delete is a
// deleted item.
func (h *ItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.items.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("delete item failed", slog.String("error", err.Error()))
		redirectWithFlash(w, r, "/", "error", "Error! There was a problem deleting the item.")
		return
	}

	redirectWithFlash(w, r, "/", "success", "Bucket List item deleted successfully!")
}

// itemFormFromRequest pulls the item fields out of a parsed form. The
// user id is deliberately NOT part of this — ownership comes from the
// session, never from the client.
func itemFormFromRequest(r *http.Request) service.ItemForm {
	return service.ItemForm{
		Name:           r.PostFormValue("name"),
		Description:    r.PostFormValue("description"),
		CompletionDate: r.PostFormValue("completion_date"),
		GroupID:        r.PostFormValue("group_id"),
	}
}
