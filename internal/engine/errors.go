package engine

import "fmt"

// Code is a machine-readable error kind.
type Code string

const (
	CodeInvalidClass          Code = "INVALID_CLASS"
	CodeInvalidData           Code = "INVALID_DATA"
	CodeInventoryFull         Code = "INVENTORY_FULL"
	CodeItemNotFound          Code = "ITEM_NOT_FOUND"
	CodeInvalidItemType       Code = "INVALID_ITEM_TYPE"
	CodeInsufficientFunds     Code = "INSUFFICIENT_FUNDS"
	CodeQuestNotFound         Code = "QUEST_NOT_FOUND"
	CodeQuestUnavailable      Code = "QUEST_UNAVAILABLE"
	CodeQuestAlreadyCompleted Code = "QUEST_ALREADY_COMPLETED"
	CodeQuestNotActive        Code = "QUEST_NOT_ACTIVE"
	CodeInsufficientLevel     Code = "INSUFFICIENT_LEVEL"
	CodePrerequisiteCycle     Code = "PREREQUISITE_CYCLE"
	CodeCharacterDead         Code = "CHARACTER_DEAD"
	CodeInvalidTarget         Code = "INVALID_TARGET"
	CodeCombatNotActive       Code = "COMBAT_NOT_ACTIVE"
)

// Error is a game rule violation. Every core operation that fails returns one
// and leaves the character untouched.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so the sentinels below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is.
var (
	ErrInvalidClass          = &Error{Code: CodeInvalidClass, Message: "invalid character class"}
	ErrInvalidData           = &Error{Code: CodeInvalidData, Message: "invalid data"}
	ErrInventoryFull         = &Error{Code: CodeInventoryFull, Message: "inventory is full"}
	ErrItemNotFound          = &Error{Code: CodeItemNotFound, Message: "item not found"}
	ErrInvalidItemType       = &Error{Code: CodeInvalidItemType, Message: "invalid item type"}
	ErrInsufficientFunds     = &Error{Code: CodeInsufficientFunds, Message: "insufficient funds"}
	ErrQuestNotFound         = &Error{Code: CodeQuestNotFound, Message: "quest not found"}
	ErrQuestUnavailable      = &Error{Code: CodeQuestUnavailable, Message: "quest unavailable"}
	ErrQuestAlreadyCompleted = &Error{Code: CodeQuestAlreadyCompleted, Message: "quest already completed"}
	ErrQuestNotActive        = &Error{Code: CodeQuestNotActive, Message: "quest not active"}
	ErrInsufficientLevel     = &Error{Code: CodeInsufficientLevel, Message: "insufficient level"}
	ErrPrerequisiteCycle     = &Error{Code: CodePrerequisiteCycle, Message: "quest prerequisite cycle"}
	ErrCharacterDead         = &Error{Code: CodeCharacterDead, Message: "character is dead"}
	ErrInvalidTarget         = &Error{Code: CodeInvalidTarget, Message: "invalid target"}
	ErrCombatNotActive       = &Error{Code: CodeCombatNotActive, Message: "combat is not active"}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// LevelGateError builds the InsufficientLevel error for a quest gate.
func LevelGateError(questID string, required, current int) *Error {
	return &Error{
		Code:    CodeInsufficientLevel,
		Message: fmt.Sprintf("quest '%s' requires level %d (currently %d)", questID, required, current),
		Metadata: map[string]string{
			"quest_id":       questID,
			"required_level": fmt.Sprint(required),
			"current_level":  fmt.Sprint(current),
		},
	}
}
