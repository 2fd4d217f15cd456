package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateApplication is returned when a volunteer already has an
// application for the event. Backed by a unique constraint on
// (event_id, volunteer_id), so it holds under concurrent double-submission.
var ErrDuplicateApplication = errors.New("volunteer has already applied to this event")

// ErrInvalidTransition is returned when a decision targets an application
// that is no longer pending.
var ErrInvalidTransition = errors.New("application is not pending")

// ErrEmailTaken is returned when a signup reuses an existing account email.
var ErrEmailTaken = errors.New("email is already registered")

// ErrInvalidCredentials is returned on failed authentication. The message is
// identical for unknown emails and wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")
