package http

import (
	"github.com/homepro-hq/marketplace-backend/internal/intake/repository"
	"github.com/homepro-hq/marketplace-backend/internal/intake/service"
	"github.com/homepro-hq/marketplace-backend/internal/uploads"
)

// Handler bundles the dependencies for intake HTTP endpoints.
type Handler struct {
	drafts   *repository.DraftRepository
	uploader *uploads.Adapter
	orch     *service.Orchestrator
}

func New(drafts *repository.DraftRepository, uploader *uploads.Adapter, orch *service.Orchestrator) *Handler {
	return &Handler{drafts: drafts, uploader: uploader, orch: orch}
}

// updateReq is a partial patch: only fields present in the body are applied.
type updateReq struct {
	Title                  *string   `json:"title"`
	Category               *string   `json:"category"`
	Description            *string   `json:"description"`
	Location               *string   `json:"location"`
	BudgetLabel            *string   `json:"budget_label"`
	TimelineLabel          *string   `json:"timeline_label"`
	Skills                 *[]string `json:"skills"`
	RequiredRoles          *[]string `json:"required_roles"`
	Urgency                *string   `json:"urgency"`
	AdditionalRequirements *string   `json:"additional_requirements"`
}
