package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error taxonomy surfaced by every service operation. Handlers match on these
// with errors.Is and map them to HTTP responses; no free-text inspection.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrNotAuthorized means the actor lacks permission for the mutation.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrSelfVote means an author tried to vote on their own content.
	ErrSelfVote = errors.New("cannot vote on your own content")

	// ErrDuplicateAnswer means the author already answered this question.
	ErrDuplicateAnswer = errors.New("question already answered by this author")

	// ErrMismatch means a cross-entity reference is inconsistent, e.g.
	// accepting an answer that belongs to a different question.
	ErrMismatch = errors.New("entity reference mismatch")

	// ErrConflict means a concurrent mutation touched the same entity.
	ErrConflict = errors.New("concurrent modification conflict")

	// ErrTransientStore means the backing store is temporarily unavailable.
	// Operations wrap their transactions in withRetry so this is retried a
	// bounded number of times before surfacing.
	ErrTransientStore = errors.New("backing store temporarily unavailable")
)

// storeErr classifies a raw storage error into the taxonomy above. Unknown
// errors pass through unchanged.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "40001" || pgErr.Code == "40P01":
			// serialization failure / deadlock
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case pgErr.Code == "23505":
			// unique violation: two concurrent writers raced on the same row
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case strings.HasPrefix(pgErr.Code, "08"),
			strings.HasPrefix(pgErr.Code, "53"),
			pgErr.Code == "57P03":
			// connection failures, resource exhaustion, server starting up
			return fmt.Errorf("%w: %v", ErrTransientStore, err)
		}
	}

	return err
}
