package tool

import (
	"encoding/json"
	"fmt"
)

// QueryResult is either a non-empty list of records or a human readable
// not-found message.
type QueryResult[T any] struct {
	records []T
	message string
}

func Found[T any](records []T) QueryResult[T] {
	return QueryResult[T]{records: records}
}

func NotFound[T any](message string) QueryResult[T] {
	return QueryResult[T]{message: message}
}

func (r QueryResult[T]) Found() bool {
	return len(r.records) > 0
}

func (r QueryResult[T]) Records() []T {
	return r.records
}

func (r QueryResult[T]) Message() string {
	return r.message
}

// Encode renders the payload handed to the model: a JSON array when records
// were found, the plain message otherwise.
func (r QueryResult[T]) Encode() (string, error) {
	if !r.Found() {
		return r.message, nil
	}
	raw, err := json.Marshal(r.records)
	if err != nil {
		return "", fmt.Errorf("encode query result: %w", err)
	}
	return string(raw), nil
}
