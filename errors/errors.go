package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrMissingCredential = fmt.Errorf("missing supabase credential")
	ErrKeyRoleMismatch   = fmt.Errorf("supabase key carries an unexpected role")
	ErrInvalidEndpoint   = fmt.Errorf("invalid supabase endpoint")
	ErrRequestFailed     = fmt.Errorf("supabase request failed")

	ErrUnexpectedStatus   = fmt.Errorf("unexpected http status")
	ErrNotHTML            = fmt.Errorf("response is not an html document")
	ErrPageTooLarge       = fmt.Errorf("response body exceeds the size limit")
	ErrElementNotFound    = fmt.Errorf("html element not found")
	ErrRaceInfoNotFound   = fmt.Errorf("race information not found")
	ErrRaceResultsMissing = fmt.Errorf("no race results found")
	ErrHorseNameNotFound  = fmt.Errorf("horse name not found")

	ErrInvalidRaceID      = fmt.Errorf("race id must be 12 digits")
	ErrUnknownRankingKind = fmt.Errorf("unknown ranking kind")
	ErrAlreadyClaimed     = fmt.Errorf("id already claimed by another run")
	ErrNilDatabase        = fmt.Errorf("database connection is nil")
	ErrRelationNotFound   = fmt.Errorf("relation not found")
	ErrCacheMiss          = fmt.Errorf("page not cached")
)

// Is, As and Join forward to the standard library so callers need a single errors import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

func Join(errs ...error) error { return stderrors.Join(errs...) }
