package storage

import "errors"

var (
	// ErrCharacterNotFound means no save file exists for the character.
	ErrCharacterNotFound = errors.New("character not found")
	// ErrSaveFileCorrupted means the save file exists but could not be read.
	ErrSaveFileCorrupted = errors.New("save file corrupted")
	// ErrMissingDataFile means a catalog file does not exist.
	ErrMissingDataFile = errors.New("missing data file")
)
