package game

import "errors"

// Rejected commands return one of these and leave the session untouched.
var (
	ErrBusy                = errors.New("a turn is already in progress")
	ErrNoEnemy             = errors.New("there is no enemy to battle")
	ErrEnemyPresent        = errors.New("an enemy is already present")
	ErrUnknownMove         = errors.New("the active creature does not know that move")
	ErrNoUsesLeft          = errors.New("that move has no uses left")
	ErrNoCaptureItem       = errors.New("no capture items left")
	ErrCannotCaptureLeader = errors.New("a gym leader's creature cannot be captured")
	ErrAllFainted          = errors.New("all of your creatures have fainted")
	ErrFainted             = errors.New("that creature has fainted")
	ErrAlreadyActive       = errors.New("that creature is already in battle")
	ErrUnknownArea         = errors.New("unknown area")
	ErrAreaLocked          = errors.New("that area is not unlocked yet")
	ErrAreaNotCleared      = errors.New("the current area is not cleared yet")
	ErrUnknownItem         = errors.New("unknown item")
	ErrNoItem              = errors.New("you have none of that item")
	ErrItemHasNoEffect     = errors.New("it won't have any effect")
)
