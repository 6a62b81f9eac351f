package domain

import "errors"

var (
	// ErrUserNotFound is returned when a user identifier is unknown.
	ErrUserNotFound = errors.New("user not found")
	// ErrModuleNotFound indicates an unknown learning module identifier.
	ErrModuleNotFound = errors.New("learning module not found")
	// ErrDesignNotFound indicates an unknown rocket design identifier.
	ErrDesignNotFound = errors.New("rocket design not found")
	// ErrProgressNotFound indicates no progress record exists for a user/module pair.
	ErrProgressNotFound = errors.New("module progress not found")
	// ErrZoneMismatch is returned when a part is dropped in a zone it does not belong to.
	ErrZoneMismatch = errors.New("part does not belong in that zone")
	// ErrUnknownPart indicates a part identifier outside the fixed five-part catalog.
	ErrUnknownPart = errors.New("unknown rocket part")
	// ErrRocketIncomplete is returned when a launch is attempted before all zones are filled.
	ErrRocketIncomplete = errors.New("rocket assembly incomplete")
	// ErrInvalidXPAmount is returned for negative XP awards.
	ErrInvalidXPAmount = errors.New("xp amount must be non-negative")
	// ErrUnknownBadge indicates a badge identifier outside the fixed badge set.
	ErrUnknownBadge = errors.New("unknown badge")
	// ErrInvalidAnswer indicates a quiz answer referencing a question or option that does not exist.
	ErrInvalidAnswer = errors.New("invalid quiz answer")
)
