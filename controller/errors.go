package controller

import "errors"

var (
	ErrParseRequest = errors.New("failed to parse request")

	ErrCreateSession      = errors.New("failed to create an agent session")
	ErrGetSessions        = errors.New("failed to get agent sessions")
	ErrDeleteSession      = errors.New("failed to delete an agent session")
	ErrGetSessionMessages = errors.New("failed to get session messages")
	ErrUpdateSessionTitle = errors.New("failed to update session title")

	ErrCreateAgent = errors.New("failed to create an agent")
	ErrCallAgent   = errors.New("error while calling agent")

	ErrSaveMessages = errors.New("failed to save chat messages")
)
