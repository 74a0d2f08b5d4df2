package game

import "github.com/myrjola/whodunit/internal/errors"

// Rejected-action and not-found conditions reported to the transport layer. None of
// these mutate session state.
var (
	ErrSessionNotFound = errors.NewSentinel("session not found")
	ErrSessionFinished = errors.NewSentinel("game is already finished")
	ErrUnknownNPC      = errors.NewSentinel("no such NPC")
	ErrQuestionLimit   = errors.NewSentinel("question limit reached")
	ErrHintLimit       = errors.NewSentinel("hint limit reached")
	ErrNoQuestions     = errors.NewSentinel("at least one question must be asked before accusing")
)
