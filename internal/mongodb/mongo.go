package mongodb

import "errors"

var (
	ErrRecordNotFound     = errors.New("record not found in the database")
	ErrNoDocumentModified = errors.New("no document was modified in the database")
)
