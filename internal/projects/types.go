package projects

import "fmt"

// CreatePayload is the body sent to the project-creation service. Field names
// match its REST contract.
type CreatePayload struct {
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	Category               int64    `json:"category"`
	Location               string   `json:"location"`
	BudgetType             string   `json:"budget_type"`
	BudgetMin              *int     `json:"budget_min"`
	BudgetMax              *int     `json:"budget_max"`
	Timeline               string   `json:"timeline"`
	RequiredSkills         []string `json:"required_skills"`
	RequiredRoles          []string `json:"required_roles"`
	AdditionalRequirements string   `json:"additional_requirements"`
	Urgency                string   `json:"urgency"`
	IsRemoteAllowed        bool     `json:"is_remote_allowed"`
	RequiresLicense        bool     `json:"requires_license"`
	RequiresInsurance      bool     `json:"requires_insurance"`
	ImageIDs               []int64  `json:"image_ids"`
}

// CreatedProject is the subset of the creation response we consume.
type CreatedProject struct {
	ID int64 `json:"id"`
}

// APIError is a non-2xx response from the creation service, with the
// human-readable message extracted from its error body when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("project service: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("project service: status %d", e.StatusCode)
}

type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Detail
}
