package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesForm() *Form {
	return &Form{
		ID: "form-1",
		Questions: []Question{
			{ID: "q1", Type: QuestionRadio, Label: "What do you need?", Options: []string{"sales", "support"}, IsRequired: true, OrderIndex: 0},
			{ID: "q2", Type: QuestionText, Label: "Anything else?", OrderIndex: 1},
		},
		Rules: []Rule{
			{
				ID:         "r1",
				OrderIndex: 0,
				Conditions: []Condition{{QuestionID: "q1", Operator: OpEquals, Value: "sales"}},
				Action:     Action{Type: ActionRouteToBooking, BookingLinkID: "link-5"},
			},
			{
				ID:         "r2",
				OrderIndex: 1,
				Action:     Action{Type: ActionShowMessage, Message: "thanks"},
			},
		},
		DefaultAction: &Action{Type: ActionShowMessage, Message: "default"},
	}
}

func TestDecide(t *testing.T) {
	t.Run("first matching rule wins", func(t *testing.T) {
		action, err := Decide(salesForm(), Answers{"q1": {"sales"}})
		require.NoError(t, err)
		assert.Equal(t, ActionRouteToBooking, action.Type)
		assert.Equal(t, "link-5", action.BookingLinkID)
	})

	t.Run("catch-all rule matches anything", func(t *testing.T) {
		action, err := Decide(salesForm(), Answers{"q1": {"support"}})
		require.NoError(t, err)
		assert.Equal(t, ActionShowMessage, action.Type)
		assert.Equal(t, "thanks", action.Message)
	})

	t.Run("missing required answer aborts before rules", func(t *testing.T) {
		_, err := Decide(salesForm(), Answers{"q2": {"hello"}})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "q1", validationErr.QuestionID)
	})

	t.Run("blank answer does not satisfy required", func(t *testing.T) {
		_, err := Decide(salesForm(), Answers{"q1": {"  "}})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "q1", validationErr.QuestionID)
	})

	t.Run("default action when no rule matches", func(t *testing.T) {
		form := salesForm()
		form.Rules = form.Rules[:1] // drop the catch-all

		action, err := Decide(form, Answers{"q1": {"support"}})
		require.NoError(t, err)
		assert.Equal(t, "default", action.Message)
	})

	t.Run("no match and no default is an error", func(t *testing.T) {
		form := salesForm()
		form.Rules = form.Rules[:1]
		form.DefaultAction = nil

		_, err := Decide(form, Answers{"q1": {"support"}})
		assert.ErrorIs(t, err, ErrNoDefaultAction)
	})

	t.Run("rule order is priority not slice order", func(t *testing.T) {
		form := salesForm()
		form.Rules[0].OrderIndex = 5 // push the sales rule behind the catch-all

		action, err := Decide(form, Answers{"q1": {"sales"}})
		require.NoError(t, err)
		assert.Equal(t, "thanks", action.Message)
	})
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name   string
		cond   Condition
		values []string
		want   bool
	}{
		{"equals match", Condition{Operator: OpEquals, Value: "a"}, []string{"a"}, true},
		{"equals mismatch", Condition{Operator: OpEquals, Value: "a"}, []string{"b"}, false},
		{"equals multi-valued never matches", Condition{Operator: OpEquals, Value: "a"}, []string{"a", "b"}, false},
		{"not equals", Condition{Operator: OpNotEquals, Value: "a"}, []string{"b"}, true},
		{"not equals on missing answer", Condition{Operator: OpNotEquals, Value: "a"}, nil, true},
		{"contains membership", Condition{Operator: OpContains, Value: "a"}, []string{"b", "a"}, true},
		{"contains substring", Condition{Operator: OpContains, Value: "urgent"}, []string{"this is urgent please"}, true},
		{"one of", Condition{Operator: OpOneOf, Values: []string{"x", "y"}}, []string{"y"}, true},
		{"one of miss", Condition{Operator: OpOneOf, Values: []string{"x", "y"}}, []string{"z"}, false},
		{"unknown operator", Condition{Operator: "like"}, []string{"a"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, evaluate(tc.cond, tc.values))
		})
	}
}

func TestFormValidate(t *testing.T) {
	t.Run("default action required", func(t *testing.T) {
		form := salesForm()
		form.DefaultAction = nil
		assert.ErrorIs(t, form.validate(), ErrDefaultActionRequired)
	})

	t.Run("rule referencing unknown question", func(t *testing.T) {
		form := salesForm()
		form.Rules[0].Conditions[0].QuestionID = "nope"
		assert.ErrorIs(t, form.validate(), ErrUnknownQuestion)
	})

	t.Run("booking action needs a link", func(t *testing.T) {
		form := salesForm()
		form.Rules[0].Action.BookingLinkID = ""
		assert.Error(t, form.validate())
	})

	t.Run("valid form", func(t *testing.T) {
		assert.NoError(t, salesForm().validate())
	})
}
