package routing

import (
	"sort"
	"strings"
)

// Decide evaluates a submission against the form. Required questions
// are validated first, in question order, and a missing answer aborts
// before any rule runs. Rules then evaluate in priority order; the
// first full match selects the action, otherwise the configured
// default applies.
func Decide(form *Form, answers Answers) (Action, error) {
	questions := append([]Question(nil), form.Questions...)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].OrderIndex < questions[j].OrderIndex
	})
	for _, q := range questions {
		if q.IsRequired && !answered(answers, q.ID) {
			return Action{}, &ValidationError{QuestionID: q.ID}
		}
	}

	rules := append([]Rule(nil), form.Rules...)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].OrderIndex < rules[j].OrderIndex
	})
	for _, rule := range rules {
		if matches(rule, answers) {
			return rule.Action, nil
		}
	}

	if form.DefaultAction == nil {
		return Action{}, ErrNoDefaultAction
	}
	return *form.DefaultAction, nil
}

func answered(answers Answers, questionID string) bool {
	for _, v := range answers[questionID] {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// matches requires every condition to hold. A rule with no conditions
// matches any submission.
func matches(rule Rule, answers Answers) bool {
	for _, cond := range rule.Conditions {
		if !evaluate(cond, answers[cond.QuestionID]) {
			return false
		}
	}
	return true
}

func evaluate(cond Condition, values []string) bool {
	switch cond.Operator {
	case OpEquals:
		return len(values) == 1 && values[0] == cond.Value
	case OpNotEquals:
		return len(values) != 1 || values[0] != cond.Value
	case OpContains:
		for _, v := range values {
			if v == cond.Value || strings.Contains(v, cond.Value) {
				return true
			}
		}
		return false
	case OpOneOf:
		for _, v := range values {
			for _, want := range cond.Values {
				if v == want {
					return true
				}
			}
		}
		return false
	}
	return false
}
