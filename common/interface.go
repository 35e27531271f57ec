package common

import "time"

// FileLoggingHandler defines the operations of a component able to save logs in rotating files
type FileLoggingHandler interface {
	ChangeFileLifeSpan(newDuration time.Duration, newSizeInMB uint64) error
	Close() error
	IsInterfaceNil() bool
}
