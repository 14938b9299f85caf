package construct

import "errors"

var (
	// ErrRootNotFound means the requested root item is not registered.
	ErrRootNotFound = errors.New("construct: root item not found")
	// ErrCorruptRecord means a child record is longer than its declared
	// length, so the records after it cannot be located.
	ErrCorruptRecord = errors.New("construct: corrupt child record")
	// ErrCyclicReference means a component contains itself.
	ErrCyclicReference = errors.New("construct: component references itself")
	// ErrNotContainer means the factory built a leaf for a component item.
	ErrNotContainer = errors.New("construct: object cannot hold children")
	// ErrNotList means the factory built an object without a reuse pool
	// for a list node that declares items.
	ErrNotList = errors.New("construct: object has no reuse pool")
	// ErrPoolUnderflow means a node takes more objects than were built.
	ErrPoolUnderflow = errors.New("construct: pool underflow")
	// ErrCancelled is the result of a cancelled run.
	ErrCancelled = errors.New("construct: run cancelled")
)
