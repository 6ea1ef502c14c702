package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	catdomain "github.com/homepro-hq/marketplace-backend/internal/categories/domain"
	"github.com/homepro-hq/marketplace-backend/internal/intake/domain"
	"github.com/homepro-hq/marketplace-backend/internal/intake/repository"
	"github.com/homepro-hq/marketplace-backend/internal/projects"
)

// DraftStore is the subset of the draft repository the orchestrator needs.
type DraftStore interface {
	Get(ctx context.Context, draftID string) (*domain.ProjectDraft, error)
	Save(ctx context.Context, draft *domain.ProjectDraft) error
}

// CategoryResolver maps a category display name to its ID.
type CategoryResolver interface {
	Resolve(ctx context.Context, name string) (int64, error)
}

// ProjectCreator issues the single external side effect of a submission.
type ProjectCreator interface {
	Create(ctx context.Context, payload projects.CreatePayload) (*projects.CreatedProject, error)
}

// SubmissionJournal records submission attempts. May be nil.
type SubmissionJournal interface {
	Record(ctx context.Context, rec repository.SubmissionRecord) error
}

// Orchestrator runs the submission pipeline: validate locally, resolve the
// category, normalize the budget, assemble the payload and call the creation
// service exactly once. All local checks happen before any network call, so a
// failed submission has no partial side effects beyond previously uploaded
// images.
type Orchestrator struct {
	drafts     DraftStore
	categories CategoryResolver
	creator    ProjectCreator
	journal    SubmissionJournal

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewOrchestrator(drafts DraftStore, categories CategoryResolver, creator ProjectCreator, journal SubmissionJournal) *Orchestrator {
	return &Orchestrator{
		drafts:     drafts,
		categories: categories,
		creator:    creator,
		journal:    journal,
		inFlight:   make(map[string]struct{}),
	}
}

// Submit runs the pipeline for the given draft. A second Submit for the same
// draft while one is pending is rejected with ErrSubmissionInFlight before any
// network call, which is the double-submit guard.
func (o *Orchestrator) Submit(ctx context.Context, draftID string) (*projects.CreatedProject, error) {
	o.mu.Lock()
	if _, busy := o.inFlight[draftID]; busy {
		o.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}
	o.inFlight[draftID] = struct{}{}
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		delete(o.inFlight, draftID)
		o.mu.Unlock()
	}()

	draft, err := o.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status == domain.StatusSubmitted {
		return nil, domain.ErrDraftAlreadyCreated
	}

	created, err := o.submit(ctx, draft)
	o.record(ctx, draft, created, err)
	return created, err
}

func (o *Orchestrator) submit(ctx context.Context, draft *domain.ProjectDraft) (*projects.CreatedProject, error) {
	if missingRequired(draft) {
		return nil, &domain.ValidationError{Message: "missing required fields"}
	}

	categoryID, err := o.categories.Resolve(ctx, draft.Category)
	if err != nil {
		if errors.Is(err, catdomain.ErrUnknownCategory) {
			return nil, &domain.ValidationError{Message: "invalid category"}
		}
		return nil, err
	}

	budget := domain.NormalizeBudget(draft.BudgetLabel)

	payload := projects.CreatePayload{
		Title:                  draft.Title,
		Description:            draft.Description,
		Category:               categoryID,
		Location:               draft.Location,
		BudgetType:             string(budget.Type),
		BudgetMin:              budget.Min,
		BudgetMax:              budget.Max,
		Timeline:               draft.TimelineLabel,
		RequiredSkills:         draft.Skills,
		RequiredRoles:          draft.RequiredRoles,
		AdditionalRequirements: draft.AdditionalRequirements,
		Urgency:                string(draft.Urgency),
		IsRemoteAllowed:        false,
		RequiresLicense:        false,
		RequiresInsurance:      false,
		ImageIDs:               draft.ImageIDs(),
	}

	logger := NewLogger(ctx)

	draft.Status = domain.StatusSubmitting
	if err := o.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	created, err := o.creator.Create(ctx, payload)
	if err != nil {
		draft.Status = domain.StatusEditing
		if saveErr := o.drafts.Save(ctx, draft); saveErr != nil {
			logger.LogError("submit_restore_draft", saveErr)
		}

		var apiErr *projects.APIError
		if errors.As(err, &apiErr) {
			return nil, &domain.SubmissionError{StatusCode: apiErr.StatusCode, Message: apiErr.Message, Err: err}
		}
		return nil, &domain.SubmissionError{Err: err}
	}

	draft.Status = domain.StatusSubmitted
	if err := o.drafts.Save(ctx, draft); err != nil {
		logger.LogError("submit_mark_submitted", err)
	}
	logger.LogInfof("submit", "draft_id=%s project_id=%d", draft.ID, created.ID)
	return created, nil
}

// record journals the attempt. Journal failures are logged, not surfaced; the
// user-facing result is already decided.
func (o *Orchestrator) record(ctx context.Context, draft *domain.ProjectDraft, created *projects.CreatedProject, submitErr error) {
	if o.journal == nil {
		return
	}

	rec := repository.SubmissionRecord{
		DraftID:   draft.ID,
		UserID:    draft.UserID,
		Succeeded: submitErr == nil,
	}
	if created != nil {
		rec.ProjectID = &created.ID
	}
	if submitErr != nil {
		rec.ErrorMessage = submitErr.Error()
	}

	if err := o.journal.Record(ctx, rec); err != nil {
		NewLogger(ctx).LogError("submission_journal", err)
	}
}

func missingRequired(draft *domain.ProjectDraft) bool {
	return strings.TrimSpace(draft.Title) == "" ||
		strings.TrimSpace(draft.Category) == "" ||
		strings.TrimSpace(draft.Description) == "" ||
		strings.TrimSpace(draft.Location) == ""
}
