package routing

import (
	"fmt"
	"net/http"
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/apperror"
)

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, "routing form not found")
	ErrDefaultActionRequired = apperror.New(http.StatusUnprocessableEntity, "routing form requires a default action")
	ErrNoDefaultAction       = apperror.New(http.StatusUnprocessableEntity, "no rule matched and the form has no default action")
	ErrUnknownQuestion       = apperror.New(http.StatusUnprocessableEntity, "rule references an unknown question")
)

// QuestionType is a closed enumeration. Values are validated at the
// boundary and never compared as free-form strings downstream.
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionSelect   QuestionType = "select"
	QuestionRadio    QuestionType = "radio"
	QuestionCheckbox QuestionType = "checkbox"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionSelect, QuestionRadio, QuestionCheckbox:
		return true
	}
	return false
}

type ActionType string

const (
	ActionRouteToBooking ActionType = "route_to_booking"
	ActionRouteToURL     ActionType = "route_to_url"
	ActionShowMessage    ActionType = "show_message"
)

func (t ActionType) Valid() bool {
	switch t {
	case ActionRouteToBooking, ActionRouteToURL, ActionShowMessage:
		return true
	}
	return false
}

// Action is the single outcome of a submission. Exactly one of the
// payload fields is meaningful, selected by Type.
type Action struct {
	Type          ActionType `json:"type"`
	BookingLinkID string     `json:"booking_link_id,omitempty"`
	URL           string     `json:"url,omitempty"`
	Message       string     `json:"message,omitempty"`
}

func (a Action) validate() error {
	if !a.Type.Valid() {
		return apperror.Newf(http.StatusUnprocessableEntity, "invalid action type %q", a.Type)
	}
	switch a.Type {
	case ActionRouteToBooking:
		if a.BookingLinkID == "" {
			return apperror.New(http.StatusUnprocessableEntity, "route_to_booking action requires booking_link_id")
		}
	case ActionRouteToURL:
		if a.URL == "" {
			return apperror.New(http.StatusUnprocessableEntity, "route_to_url action requires url")
		}
	case ActionShowMessage:
		if a.Message == "" {
			return apperror.New(http.StatusUnprocessableEntity, "show_message action requires text")
		}
	}
	return nil
}

type Operator string

const (
	OpEquals    Operator = "equals"
	OpNotEquals Operator = "not_equals"
	OpContains  Operator = "contains"
	OpOneOf     Operator = "one_of"
)

func (o Operator) Valid() bool {
	switch o {
	case OpEquals, OpNotEquals, OpContains, OpOneOf:
		return true
	}
	return false
}

type Question struct {
	ID         string       `json:"id"`
	Type       QuestionType `json:"type"`
	Label      string       `json:"label"`
	Options    []string     `json:"options,omitempty"`
	IsRequired bool         `json:"is_required"`
	OrderIndex int          `json:"order_index"`
}

// Condition compares one answer against a value. Checkbox answers are
// multi-valued; contains tests membership there and substring on text.
type Condition struct {
	QuestionID string   `json:"question_id"`
	Operator   Operator `json:"operator"`
	Value      string   `json:"value,omitempty"`
	Values     []string `json:"values,omitempty"`
}

// Rule matches when all of its conditions hold. Rules evaluate in
// OrderIndex order and the first match wins.
type Rule struct {
	ID         string      `json:"id"`
	OrderIndex int         `json:"order_index"`
	Conditions []Condition `json:"conditions"`
	Action     Action      `json:"action"`
}

type Form struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Name          string     `json:"name"`
	Questions     []Question `json:"questions"`
	Rules         []Rule     `json:"rules"`
	DefaultAction *Action    `json:"default_action"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Answers maps question id to the submitted values. Single-valued
// question types carry exactly one element.
type Answers map[string][]string

// ValidationError reports a required question with no answer. It names
// the first unanswered question in form order.
type ValidationError struct {
	QuestionID string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required question %q was not answered", e.QuestionID)
}

func (f *Form) validate() error {
	if f.DefaultAction == nil {
		return ErrDefaultActionRequired
	}
	if err := f.DefaultAction.validate(); err != nil {
		return err
	}
	known := make(map[string]struct{}, len(f.Questions))
	for _, q := range f.Questions {
		if !q.Type.Valid() {
			return apperror.Newf(http.StatusUnprocessableEntity, "invalid question type %q", q.Type)
		}
		known[q.ID] = struct{}{}
	}
	for _, r := range f.Rules {
		if err := r.Action.validate(); err != nil {
			return err
		}
		for _, c := range r.Conditions {
			if !c.Operator.Valid() {
				return apperror.Newf(http.StatusUnprocessableEntity, "invalid operator %q", c.Operator)
			}
			if _, ok := known[c.QuestionID]; !ok {
				return ErrUnknownQuestion
			}
		}
	}
	return nil
}
