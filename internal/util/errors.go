package util

import "errors"

var (
	// ErrInvalidArgument is returned when caller input is missing or
	// malformed. Fatal to the call, not retryable.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthenticated is returned when no valid caller identity is
	// present.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrMisconfigured is returned when the deployment is missing
	// required configuration, e.g. the Gemini API key. Operator-visible.
	ErrMisconfigured = errors.New("service misconfigured")

	// ErrGenerationUnavailable is returned when the model call failed or
	// timed out. Safe to retry with backoff; nothing was persisted.
	ErrGenerationUnavailable = errors.New("generation unavailable")

	// ErrMalformedGenerationResult is returned when the model produced
	// unparsable or structurally invalid output. Nothing was persisted.
	ErrMalformedGenerationResult = errors.New("malformed generation result")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("the username is already taken")
	ErrChildNotFound      = errors.New("child not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoLearningPath     = errors.New("no learning path generated yet")
	ErrNoAssessment       = errors.New("no assessment generated yet")
)
