package ports

import "context"

// PrescriptionStorage stores uploaded prescription files.
type PrescriptionStorage interface {
	// Upload stores content under folder and returns an opaque storage path.
	// fileName is a base name without directories.
	Upload(ctx context.Context, content []byte, fileName string, folder string) (string, error)
}
