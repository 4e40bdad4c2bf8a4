package form

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/atomicstack/evsched/internal/logging/events"
	"github.com/atomicstack/evsched/internal/notify"
)

// InvalidMessage is enqueued once for every rejected submit attempt.
const InvalidMessage = "Please fill in all required fields correctly"

// Phase is the lifecycle position of a submission.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseSettled:
		return "settled"
	default:
		return "idle"
	}
}

// Outcome describes what a submit attempt did.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeSuppressed
	OutcomeStarted
)

// ValidationError names the first field that failed client-side validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s is invalid: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Controller tracks one submission per attached form.
type Controller struct {
	notifier    notify.Notifier
	validate    *validator.Validate
	submissions map[string]*Submission
}

// NewController builds a controller that reports validation failures to n.
func NewController(n notify.Notifier) *Controller {
	return &Controller{
		notifier:    n,
		validate:    validator.New(),
		submissions: make(map[string]*Submission),
	}
}

// Attach returns the submission guarding f. Attaching a form whose previous
// submission is still pending returns that submission unchanged, so a second
// concurrent submission can never be created.
func (c *Controller) Attach(f *Form) *Submission {
	if existing, ok := c.submissions[f.ID]; ok {
		if existing.form == f || existing.phase == PhasePending {
			events.Form.Attach(f.ID, true)
			return existing
		}
	}
	s := &Submission{c: c, form: f}
	c.submissions[f.ID] = s
	events.Form.Attach(f.ID, false)
	return s
}

// Detach forgets the form's submission unless it is pending.
func (c *Controller) Detach(formID string) bool {
	s, ok := c.submissions[formID]
	if !ok || s.phase == PhasePending {
		return false
	}
	delete(c.submissions, formID)
	return true
}

// Submission returns the submission for formID, if attached.
func (c *Controller) Submission(formID string) (*Submission, bool) {
	s, ok := c.submissions[formID]
	return s, ok
}

// Validate checks every field in order and returns the first failure.
func (c *Controller) Validate(f *Form) *ValidationError {
	for _, field := range f.Fields {
		if field.Rules == "" {
			continue
		}
		if err := c.validate.Var(field.Value, field.Rules); err != nil {
			return &ValidationError{Field: field.Name, Err: err}
		}
	}
	return nil
}

// Submission is the state of one form's submit lifecycle.
type Submission struct {
	c     *Controller
	form  *Form
	phase Phase
}

// Phase returns the current lifecycle phase.
func (s *Submission) Phase() Phase {
	return s.phase
}

// Form returns the guarded form.
func (s *Submission) Form() *Form {
	return s.form
}

// Attempt handles a submit request. Invalid forms are rejected without a
// phase change, the first invalid field is focused, and a single error
// notification is enqueued. Attempts while pending are suppressed.
func (s *Submission) Attempt() (Outcome, error) {
	if s.phase == PhasePending {
		events.Form.Suppressed(s.form.ID)
		return OutcomeSuppressed, nil
	}
	if verr := s.c.Validate(s.form); verr != nil {
		s.form.FocusField(verr.Field)
		if s.c.notifier != nil {
			s.c.notifier.Enqueue(InvalidMessage, notify.KindError)
		}
		events.Form.Invalid(s.form.ID, verr.Field)
		return OutcomeInvalid, verr
	}
	s.phase = PhasePending
	s.form.Submit.SetLoading(true)
	events.Form.Pending(s.form.ID)
	return OutcomeStarted, nil
}

// Settle ends a pending submission. On failure the submit control is restored
// and re-enabled; on success it is left for the caller to restore or discard.
func (s *Submission) Settle(err error) {
	if s.phase != PhasePending {
		return
	}
	s.phase = PhaseSettled
	if err != nil {
		s.form.Submit.SetLoading(false)
	}
	events.Form.Settled(s.form.ID, err)
}

// Restore puts the submit control back to its pre-submission appearance.
func (s *Submission) Restore() {
	s.form.Submit.SetLoading(false)
}
