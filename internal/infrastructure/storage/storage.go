package storage

import "context"

// Storage persists uploaded files. The returned location is what gets
// stored on the entity (a local path or an object URL) and is also the
// handle for Remove.
type Storage interface {
	// Save writes the file under a generated name that keeps the
	// original filename as a suffix, and returns its location.
	Save(ctx context.Context, originalName string, data []byte, contentType string) (string, error)

	// Remove deletes a previously saved file. Used to roll back an
	// upload when the owning entity turns out not to exist.
	Remove(ctx context.Context, location string) error
}
