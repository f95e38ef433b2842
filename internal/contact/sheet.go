// Package contact implements the spreadsheet-styled contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/retrodesk/internal/inbox"
)

var (
	ErrRequired     = errors.New("is required")
	ErrInvalidEmail = errors.New("is not a valid email address")
)

// Sheet is the contact form state. Values survive a successful submit.
type Sheet struct {
	Name      string
	Email     string
	Message   string
	Submitted bool
	// Err is the outcome of the last failed submit, nil otherwise.
	Err error

	owner  string
	rec    inbox.Recorder
	logger *slog.Logger

	editing bool
	form    *huh.Form

	// Form-bound values, copied back on completion
	fName    string
	fEmail   string
	fMessage string
	fSend    bool
}

// New creates an empty sheet addressed to owner.
func New(owner string, rec inbox.Recorder, logger *slog.Logger) *Sheet {
	if rec == nil {
		rec = inbox.NewMemory()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sheet{owner: owner, rec: rec, logger: logger}
}

// FirstName is the owner's first name, used in labels.
func (s *Sheet) FirstName() string {
	if f := strings.Fields(s.owner); len(f) > 0 {
		return f[0]
	}
	return "me"
}

// Set replaces the three field values.
func (s *Sheet) Set(name, email, message string) {
	s.Name = name
	s.Email = email
	s.Message = message
}

// Validate checks the current values without recording them.
func (s *Sheet) Validate() error {
	if err := validateRequired("name", s.Name); err != nil {
		return err
	}
	if err := validateEmail(s.Email); err != nil {
		return err
	}
	return validateRequired("message", s.Message)
}

// Submit validates and records the current values. Submitted is set only
// when the recorder accepts them. Values are never cleared.
func (s *Sheet) Submit(ctx context.Context) error {
	if err := s.Validate(); err != nil {
		s.Err = err
		return err
	}

	sub := &inbox.Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: s.Message,
	}
	if err := s.rec.Record(ctx, sub); err != nil {
		s.Err = fmt.Errorf("failed to record message: %w", err)
		s.logger.Error("contact submit failed", "error", err)
		return s.Err
	}

	s.Err = nil
	s.Submitted = true
	s.logger.Info("contact submitted", "id", sub.ID, "email", sub.Email)
	return nil
}

// Editing reports whether the form currently has keyboard focus.
func (s *Sheet) Editing() bool {
	return s.editing
}

// StartEditing builds the form from the current values.
func (s *Sheet) StartEditing(width int) tea.Cmd {
	s.fName = s.Name
	s.fEmail = s.Email
	s.fMessage = s.Message
	s.fSend = true

	if width < 30 {
		width = 30
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Your Name").
				Value(&s.fName).
				Validate(func(v string) error { return validateRequired("name", v) }),

			huh.NewInput().
				Key("email").
				Title("Your Email").
				Value(&s.fEmail).
				Validate(validateEmail),

			huh.NewText().
				Key("message").
				Title(fmt.Sprintf("Message for %s", s.FirstName())).
				Lines(3).
				Value(&s.fMessage).
				Validate(func(v string) error { return validateRequired("message", v) }),

			huh.NewConfirm().
				Key("send").
				Title(fmt.Sprintf("Send to %s?", s.FirstName())).
				Affirmative("Send").
				Negative("Don't send").
				Value(&s.fSend),
		),
	).WithWidth(width).WithShowHelp(false).WithShowErrors(true)

	s.editing = true
	return s.form.Init()
}

// StopEditing discards the form without touching the values.
func (s *Sheet) StopEditing() {
	s.editing = false
	s.form = nil
}

// Update forwards a message to the form while editing.
func (s *Sheet) Update(msg tea.Msg) tea.Cmd {
	if !s.editing || s.form == nil {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		s.StopEditing()
		return nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.finish()
		return nil
	case huh.StateAborted:
		s.StopEditing()
		return nil
	}
	return cmd
}

// finish keeps the edited values and submits them unless the user
// declined to send.
func (s *Sheet) finish() {
	s.Set(s.fName, s.fEmail, s.fMessage)
	send := s.fSend
	s.StopEditing()
	if send {
		_ = s.Submit(context.Background())
	}
}

func validateRequired(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s %w", field, ErrRequired)
	}
	return nil
}

func validateEmail(v string) error {
	if err := validateRequired("email", v); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(v))
	if err != nil || addr.Name != "" {
		return fmt.Errorf("email %w", ErrInvalidEmail)
	}
	return nil
}
