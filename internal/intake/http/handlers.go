package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/homepro-hq/marketplace-backend/internal/auth"
	"github.com/homepro-hq/marketplace-backend/internal/intake/domain"
	"github.com/homepro-hq/marketplace-backend/internal/uploads"
)

const maxImagesPerBatch = 10

func (h *Handler) create(c *gin.Context) {
	sess := auth.SessionFrom(c)

	draft := domain.NewDraft(sess.UserID)
	if err := h.drafts.Create(c.Request.Context(), draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "draft": draft})
}

func (h *Handler) list(c *gin.Context) {
	sess := auth.SessionFrom(c)

	items, err := h.drafts.ListByUser(c.Request.Context(), sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "drafts": items})
}

func (h *Handler) get(c *gin.Context) {
	draft, ok := h.ownedDraft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "draft": draft})
}

func (h *Handler) update(c *gin.Context) {
	draft, ok := h.ownedDraft(c)
	if !ok {
		return
	}
	if draft.Status != domain.StatusEditing {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "draft is not editable"})
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := applyUpdate(draft, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if err := h.drafts.Save(c.Request.Context(), draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "draft": draft})
}

func applyUpdate(draft *domain.ProjectDraft, req *updateReq) error {
	if req.Urgency != nil {
		u := domain.Urgency(*req.Urgency)
		if _, ok := domain.ValidUrgencies[u]; !ok {
			return &domain.ValidationError{Message: "invalid urgency"}
		}
		draft.Urgency = u
	}
	if req.RequiredRoles != nil {
		for _, role := range *req.RequiredRoles {
			if _, ok := domain.ValidRoles[role]; !ok {
				return &domain.ValidationError{Message: "invalid role: " + role}
			}
		}
		draft.RequiredRoles = *req.RequiredRoles
	}
	if req.Title != nil {
		draft.Title = *req.Title
	}
	if req.Category != nil {
		draft.Category = *req.Category
	}
	if req.Description != nil {
		draft.Description = *req.Description
	}
	if req.Location != nil {
		draft.Location = *req.Location
	}
	if req.BudgetLabel != nil {
		draft.BudgetLabel = *req.BudgetLabel
	}
	if req.TimelineLabel != nil {
		draft.TimelineLabel = *req.TimelineLabel
	}
	if req.Skills != nil {
		draft.Skills = *req.Skills
	}
	if req.AdditionalRequirements != nil {
		draft.AdditionalRequirements = *req.AdditionalRequirements
	}
	return nil
}

func (h *Handler) remove(c *gin.Context) {
	draft, ok := h.ownedDraft(c)
	if !ok {
		return
	}

	if err := h.drafts.Delete(c.Request.Context(), draft.ID, draft.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) advance(c *gin.Context) {
	h.step(c, func(d *domain.ProjectDraft) { d.Advance() })
}

func (h *Handler) retreat(c *gin.Context) {
	h.step(c, func(d *domain.ProjectDraft) { d.Retreat() })
}

func (h *Handler) step(c *gin.Context, move func(*domain.ProjectDraft)) {
	draft, ok := h.ownedDraft(c)
	if !ok {
		return
	}

	move(draft)
	if err := h.drafts.Save(c.Request.Context(), draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "draft": draft})
}

func (h *Handler) uploadImages(c *gin.Context) {
	draft, ok := h.ownedDraft(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "multipart form required"})
		return
	}
	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "at least one image is required"})
		return
	}
	if len(fileHeaders) > maxImagesPerBatch {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "too many images in one batch"})
		return
	}

	files := make([]uploads.File, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "read " + fh.Filename + ": " + err.Error()})
			return
		}
		defer f.Close()
		files = append(files, uploads.File{Name: fh.Filename, Content: f})
	}

	uploaded, err := h.uploader.UploadBatch(c.Request.Context(), files)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	draft.UploadedImages = append(draft.UploadedImages, uploaded...)
	if err := h.drafts.Save(c.Request.Context(), draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "draft": draft})
}

func (h *Handler) removeImage(c *gin.Context) {
	draft, ok := h.ownedDraft(c)
	if !ok {
		return
	}

	imageID, err := strconv.ParseInt(c.Param("image_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid image id"})
		return
	}

	if !draft.RemoveImage(imageID) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": domain.ErrImageNotFound.Error()})
		return
	}

	if err := h.drafts.Save(c.Request.Context(), draft); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "draft": draft})
}

func (h *Handler) submit(c *gin.Context) {
	draft, ok := h.ownedDraft(c)
	if !ok {
		return
	}

	created, err := h.orch.Submit(c.Request.Context(), draft.ID)
	if err != nil {
		h.submitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project_id": created.ID})
}

func (h *Handler) submitError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	var sErr *domain.SubmissionError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": vErr.Message})
	case errors.Is(err, domain.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrDraftAlreadyCreated):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.As(err, &sErr):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": sErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}

// ownedDraft loads the draft from the URL and checks it belongs to the caller.
// A foreign draft reads as not found so draft IDs cannot be probed.
func (h *Handler) ownedDraft(c *gin.Context) (*domain.ProjectDraft, bool) {
	sess := auth.SessionFrom(c)

	draft, err := h.drafts.Get(c.Request.Context(), c.Param("draft_id"))
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return nil, false
	}
	if draft.UserID != sess.UserID {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": domain.ErrDraftNotFound.Error()})
		return nil, false
	}
	return draft, true
}
