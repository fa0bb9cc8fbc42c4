package http

import (
	"github.com/agilityengineers/SmartScheduler-sub007/internal/routing"
)

type QuestionDTO struct {
	ID         string   `json:"id"`
	Type       string   `json:"type" binding:"required"`
	Label      string   `json:"label" binding:"required"`
	Options    []string `json:"options"`
	IsRequired bool     `json:"is_required"`
	OrderIndex int      `json:"order_index"`
}

type ConditionDTO struct {
	QuestionID string   `json:"question_id" binding:"required"`
	Operator   string   `json:"operator" binding:"required"`
	Value      string   `json:"value"`
	Values     []string `json:"values"`
}

type ActionDTO struct {
	Type          string `json:"type" binding:"required"`
	BookingLinkID string `json:"booking_link_id"`
	URL           string `json:"url"`
	Message       string `json:"message"`
}

type RuleDTO struct {
	ID         string         `json:"id"`
	OrderIndex int            `json:"order_index"`
	Conditions []ConditionDTO `json:"conditions"`
	Action     ActionDTO      `json:"action" binding:"required"`
}

type FormRequest struct {
	Name          string        `json:"name" binding:"required"`
	Questions     []QuestionDTO `json:"questions" binding:"dive"`
	Rules         []RuleDTO     `json:"rules" binding:"dive"`
	DefaultAction *ActionDTO    `json:"default_action"`
}

type SubmitRequest struct {
	Answers map[string][]string `json:"answers" binding:"required"`
}

type SubmitResponse struct {
	Action routing.Action `json:"action"`
}

func (r *FormRequest) ToForm() *routing.Form {
	form := &routing.Form{Name: r.Name}
	for _, q := range r.Questions {
		form.Questions = append(form.Questions, routing.Question{
			ID:         q.ID,
			Type:       routing.QuestionType(q.Type),
			Label:      q.Label,
			Options:    q.Options,
			IsRequired: q.IsRequired,
			OrderIndex: q.OrderIndex,
		})
	}
	for _, rule := range r.Rules {
		conditions := make([]routing.Condition, 0, len(rule.Conditions))
		for _, c := range rule.Conditions {
			conditions = append(conditions, routing.Condition{
				QuestionID: c.QuestionID,
				Operator:   routing.Operator(c.Operator),
				Value:      c.Value,
				Values:     c.Values,
			})
		}
		form.Rules = append(form.Rules, routing.Rule{
			ID:         rule.ID,
			OrderIndex: rule.OrderIndex,
			Conditions: conditions,
			Action:     toAction(rule.Action),
		})
	}
	if r.DefaultAction != nil {
		action := toAction(*r.DefaultAction)
		form.DefaultAction = &action
	}
	return form
}

func toAction(dto ActionDTO) routing.Action {
	return routing.Action{
		Type:          routing.ActionType(dto.Type),
		BookingLinkID: dto.BookingLinkID,
		URL:           dto.URL,
		Message:       dto.Message,
	}
}
