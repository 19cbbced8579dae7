// Package validate offers an optional downstream check for documents
// already framed by package framer. Framing only tracks structural
// delimiter balance, so a framed "document" like {"a":,} is structurally
// closed but not valid JSON; callers that care can run it through
// Document before acting on it.
package validate

import (
	"fmt"

	gojson "github.com/goccy/go-json"
)

// ErrInvalidDocument wraps the underlying decode error from a document
// that framer handed off as structurally complete but that does not
// parse as JSON.
type ErrInvalidDocument struct {
	Doc []byte
	Err error
}

func (e *ErrInvalidDocument) Error() string {
	return fmt.Sprintf("validate: invalid document (%d bytes): %v", len(e.Doc), e.Err)
}

func (e *ErrInvalidDocument) Unwrap() error { return e.Err }

// Document reports whether doc parses as a single JSON value, using
// goccy/go-json rather than encoding/json for parity with the
// high-throughput decode path the rest of this module is built around.
func Document(doc []byte) error {
	var v interface{}
	if err := gojson.Unmarshal(doc, &v); err != nil {
		return &ErrInvalidDocument{Doc: doc, Err: err}
	}
	return nil
}

// OnDoc adapts Document into a framer.DocFunc/framer.ErrFunc pair: valid
// documents are forwarded to next, invalid ones are reported to onErr
// instead.
func OnDoc(next func(doc []byte), onErr func(err error)) func(doc []byte) {
	return func(doc []byte) {
		if err := Document(doc); err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		next(doc)
	}
}
