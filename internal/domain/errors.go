package domain

import "errors"

// Catalog errors
var (
	ErrCatalogNotReady = errors.New("catalog is not loaded")
	ErrCatalogNotFound = errors.New("no stored catalog snapshot")
	ErrNoChampions     = errors.New("catalog has no champions")
)

// Round errors
var (
	ErrInvalidSlot    = errors.New("slot index out of range")
	ErrRoundNotActive = errors.New("no round in progress")
	ErrSlotNotStopped = errors.New("slot has not been stopped")
	ErrRerollUsed     = errors.New("slot reroll already used")
	ErrEngineClosed   = errors.New("engine is closed")
)
