package domain

import "time"

const (
	StepMin = 1
	StepMax = 4
)

// Urgency levels for a project posting.
type Urgency string

const (
	UrgencyUrgent Urgency = "urgent"
	UrgencyNormal Urgency = "normal"
	UrgencyLow    Urgency = "low"
)

var ValidUrgencies = map[Urgency]struct{}{
	UrgencyUrgent: {},
	UrgencyNormal: {},
	UrgencyLow:    {},
}

// Roles a client can request for a project.
const (
	RoleHomePro    = "home-pro"
	RoleSpecialist = "specialist"
	RoleCrewMember = "crew-member"
)

var ValidRoles = map[string]struct{}{
	RoleHomePro:    {},
	RoleSpecialist: {},
	RoleCrewMember: {},
}

// Status of a draft within the wizard lifecycle.
type Status string

const (
	StatusEditing    Status = "editing"
	StatusSubmitting Status = "submitting"
	StatusSubmitted  Status = "submitted"
)

// UploadedFile references an image already stored on the file service.
type UploadedFile struct {
	ID               int64  `json:"id"`
	RemoteURL        string `json:"file"`
	OriginalFilename string `json:"original_filename"`
}

// ProjectDraft is the server-side record of a not-yet-submitted project
// posting. It is mutated by every wizard interaction and discarded (or
// expired) once the project is created.
type ProjectDraft struct {
	ID                     string         `json:"id"`
	UserID                 string         `json:"user_id"`
	Step                   int            `json:"step"`
	Status                 Status         `json:"status"`
	Title                  string         `json:"title"`
	Category               string         `json:"category"`
	Description            string         `json:"description"`
	Location               string         `json:"location"`
	BudgetLabel            string         `json:"budget_label"`
	TimelineLabel          string         `json:"timeline_label"`
	Skills                 []string       `json:"skills"`
	RequiredRoles          []string       `json:"required_roles"`
	UploadedImages         []UploadedFile `json:"uploaded_images"`
	Urgency                Urgency        `json:"urgency"`
	AdditionalRequirements string         `json:"additional_requirements"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

// NewDraft returns an empty draft positioned at the first wizard step.
func NewDraft(userID string) *ProjectDraft {
	return &ProjectDraft{
		UserID:         userID,
		Step:           StepMin,
		Status:         StatusEditing,
		Urgency:        UrgencyNormal,
		Skills:         []string{},
		RequiredRoles:  []string{},
		UploadedImages: []UploadedFile{},
	}
}

// Advance moves the draft one step forward. Advancing past the last step is a
// silent no-op so repeated clicks cannot push the wizard out of range.
func (d *ProjectDraft) Advance() {
	if d.Step < StepMax {
		d.Step++
	}
}

// Retreat moves the draft one step back, clamping at the first step.
func (d *ProjectDraft) Retreat() {
	if d.Step > StepMin {
		d.Step--
	}
}

// RemoveImage drops the referenced upload from the draft. The remote file is
// left in place; no deletion call is made against the file service.
func (d *ProjectDraft) RemoveImage(id int64) bool {
	for i, img := range d.UploadedImages {
		if img.ID == id {
			d.UploadedImages = append(d.UploadedImages[:i], d.UploadedImages[i+1:]...)
			return true
		}
	}
	return false
}

// ImageIDs returns the upload identifiers in their original order.
func (d *ProjectDraft) ImageIDs() []int64 {
	ids := make([]int64, 0, len(d.UploadedImages))
	for _, img := range d.UploadedImages {
		ids = append(ids, img.ID)
	}
	return ids
}
