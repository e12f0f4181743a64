package taskstore

import (
	"errors"
	"fmt"
)

var (
	ErrStorage          = errors.New("taskstore: storage failure")
	ErrTaskNotFound     = errors.New("taskstore: task not found")
	ErrMalformedPayload = errors.New("taskstore: malformed payload")
)

// StorageError wraps a failed read, write or decode of the persisted
// collection. errors.Is(err, ErrStorage) matches every StorageError.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("taskstore: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
