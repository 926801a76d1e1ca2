package core

import "io"

// FileStorage is any service that can persist uploaded files and hand back
// a URL they can later be retrieved from.
type FileStorage interface {
	Save(name string, r io.Reader) (url string, err error)
}
