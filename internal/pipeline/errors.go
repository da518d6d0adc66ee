// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"
)

// Failure classes. A run error matches exactly one of them with errors.Is.
var (
	ErrFetch          = errors.New("fetch failure")
	ErrEnrichment     = errors.New("enrichment failure")
	ErrPersistence    = errors.New("persistence failure")
	ErrInvalidContent = errors.New("invalid content")
)

// Stage names a pipeline step that can fail.
type Stage string

const (
	StageLoad     Stage = "load"
	StageValidate Stage = "validate"
	StageFetch    Stage = "fetch"
	StageEnrich   Stage = "enrich"
	StageSave     Stage = "save"
)

// class maps a failing stage to its failure class.
func (s Stage) class() error {
	switch s {
	case StageLoad, StageSave:
		return ErrPersistence
	case StageFetch:
		return ErrFetch
	case StageEnrich:
		return ErrEnrichment
	default:
		return ErrInvalidContent
	}
}

// StageError is returned by Run. It names the stage that failed and wraps
// both the failure class and the underlying cause.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

// Unwrap exposes the failure class and the cause to errors.Is and errors.As.
func (e *StageError) Unwrap() []error {
	return []error{e.Stage.class(), e.Err}
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
