package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/bucketlist/internal/apperror"
	"github.com/sakif/bucketlist/internal/model"
	"github.com/sakif/bucketlist/internal/service"
)

// GroupHandler serves the shared group pages.
type GroupHandler struct {
	groups   *service.GroupService
	renderer *Renderer
	logger   *slog.Logger
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(groups *service.GroupService, renderer *Renderer, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{groups: groups, renderer: renderer, logger: logger}
}

type groupsPage struct {
	Title  string
	Flash  *Flash
	Groups []model.Group
}

type groupPage struct {
	Title string
	Flash *Flash
	Group *model.Group
	Items []model.BucketListItem
}

// HandleList shows all groups with a create form.
//
// HTTP: GET /groups
func (h *GroupHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "groups.html", groupsPage{
		Title:  "Groups",
		Flash:  popFlash(w, r),
		Groups: groups,
	})
}

// HandleCreate adds a new group.
//
// HTTP: POST /groups
func (h *GroupHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/groups", "error", "Error! There was a problem creating the group.")
		return
	}

	_, err := h.groups.Create(r.Context(), r.PostFormValue("name"))
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrConflict):
			redirectWithFlash(w, r, "/groups", "error", "Group name already exists!")
		case errors.Is(err, apperror.ErrValidation):
			redirectWithFlash(w, r, "/groups", "error", errorMessage(err))
		default:
			h.logger.Error("create group failed", slog.String("error", err.Error()))
			redirectWithFlash(w, r, "/groups", "error", "Error! There was a problem creating the group.")
		}
		return
	}

	redirectWithFlash(w, r, "/groups", "success", "Group created successfully!")
}

// HandleShow is the shared view: every item assigned to the group, whoever
// owns it. Reading a group is open to any authenticated user; the items in
// it still can only be edited by their owners.
//
// HTTP: GET /groups/{id}
func (h *GroupHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	group, items, err := h.groups.Items(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrValidation) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "group.html", groupPage{
		Title: group.Name,
		Flash: popFlash(w, r),
		Group: group,
		Items: items,
	})
}
