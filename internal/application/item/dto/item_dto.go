package dto

import (
	"errors"
	"slices"

	"github.com/Senticor-ai/project-sub006/internal/domain/item"
	"github.com/Senticor-ai/project-sub006/internal/domain/shared"
	"github.com/Senticor-ai/project-sub006/internal/domain/validation"
)

// CreateItemRequest is the loosely-typed input for creating an item
type CreateItemRequest struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	OrgID string `json:"org_id,omitempty"`

	Description string `json:"description,omitempty"`
	Email       string `json:"email,omitempty"`
	Telephone   string `json:"telephone,omitempty"`
	URL         string `json:"url,omitempty"`

	Bucket     string   `json:"bucket,omitempty"`
	RawCapture string   `json:"raw_capture,omitempty"`
	ProjectID  string   `json:"project_id,omitempty"`
	OrgRef     string   `json:"org_ref,omitempty"`
	OrgRole    string   `json:"org_role,omitempty"`
	IsFocused  *bool    `json:"is_focused,omitempty"`
	DueDate    string   `json:"due_date,omitempty"`
	Contexts   []string `json:"contexts,omitempty"`
}

// ToSpec converts the request into the domain builder input
func (r CreateItemRequest) ToSpec() item.CreateSpec {
	return item.CreateSpec{
		Type:        item.ItemType(r.Type),
		Name:        r.Name,
		OrgID:       r.OrgID,
		Description: r.Description,
		Email:       r.Email,
		Telephone:   r.Telephone,
		URL:         r.URL,
		Bucket:      item.Bucket(r.Bucket),
		RawCapture:  r.RawCapture,
		ProjectID:   r.ProjectID,
		OrgRef:      r.OrgRef,
		OrgRole:     r.OrgRole,
		IsFocused:   r.IsFocused,
		DueDate:     r.DueDate,
		Contexts:    slices.Clone(r.Contexts),
	}
}

// IssueDetail is one validation issue in an error response
type IssueDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Source  string `json:"source"`
	Rule    string `json:"rule,omitempty"`
}

// ValidationErrorResponse is the structured body returned for a rejected operation
type ValidationErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []IssueDetail `json:"details"`
}

// ToValidationErrorResponse converts err into a response body. Validation
// failures carry one detail per issue; other domain errors carry none. It
// reports false for errors that are neither.
func ToValidationErrorResponse(err error) (*ValidationErrorResponse, bool) {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		de := verr.DomainError()
		resp := &ValidationErrorResponse{
			Code:    de.Code,
			Message: de.Message,
			Details: make([]IssueDetail, 0, len(verr.Issues)),
		}
		for _, issue := range verr.Issues {
			resp.Details = append(resp.Details, ToIssueDetail(issue))
		}
		return resp, true
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		return &ValidationErrorResponse{
			Code:    de.Code,
			Message: de.Message,
			Details: []IssueDetail{},
		}, true
	}
	return nil, false
}

// ToIssueDetail converts a domain issue
func ToIssueDetail(issue validation.Issue) IssueDetail {
	return IssueDetail{
		Code:    issue.Code,
		Message: issue.Message,
		Field:   issue.Field,
		Source:  string(issue.Source),
		Rule:    issue.Rule,
	}
}

// RuleResponse describes one loaded business rule
type RuleResponse struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	When        string `json:"when,omitempty"`
	Expression  string `json:"expression"`
}

// RuleListResponse lists the loaded business rules
type RuleListResponse struct {
	Count int            `json:"count"`
	Rules []RuleResponse `json:"rules"`
}

// ToRuleListResponse converts a rule set
func ToRuleListResponse(rules *validation.RuleSet) RuleListResponse {
	list := rules.Rules()
	resp := RuleListResponse{Count: len(list), Rules: make([]RuleResponse, 0, len(list))}
	for _, r := range list {
		resp.Rules = append(resp.Rules, RuleResponse{
			ID:          r.ID,
			Description: r.Description,
			When:        r.When,
			Expression:  r.Expression,
		})
	}
	return resp
}
