package editor

import "errors"

// Structural rejections. The layout is unchanged when a command returns one
// of these.
var (
	ErrNoSpace               = errors.New("no free gap on platform")
	ErrShopWidth             = errors.New("shop width outside allowed range")
	ErrTooFewPlatforms       = errors.New("connector needs at least two platforms")
	ErrNotFound              = errors.New("element not found")
	ErrLocked                = errors.New("infrastructure block is locked")
	ErrUnknownInfrastructure = errors.New("unknown infrastructure type")
	ErrInvalidNumber         = errors.New("platform number must be positive")
)

// errSkip marks a command that found nothing to do. apply turns it into a
// nil return without committing.
var errSkip = errors.New("skip")
