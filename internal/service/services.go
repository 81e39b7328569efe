package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/config"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
)

// Actor is the resolved caller identity passed into every operation. The
// authentication boundary fills it in; authorization preconditions are still
// checked here, never assumed from the transport.
type Actor struct {
	ID       uint
	Username string
	Role     string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Services bundles all domain services over a shared database handle.
type Services struct {
	Votes         *VoteService
	Acceptance    *AcceptanceService
	Questions     *QuestionService
	Answers       *AnswerService
	Comments      *CommentService
	Notifications *NotificationService
	Moderation    *ModerationService
	Admin         *AdminService
	Tags          *TagService
}

// New wires all services.
func New(db *gorm.DB, cfg config.StoreConfig, log zerolog.Logger) *Services {
	base := base{db: db, cfg: cfg, log: log}
	return &Services{
		Votes:         &VoteService{base},
		Acceptance:    &AcceptanceService{base},
		Questions:     &QuestionService{base},
		Answers:       &AnswerService{base},
		Comments:      &CommentService{base},
		Notifications: &NotificationService{base},
		Moderation:    &ModerationService{base},
		Admin:         &AdminService{base},
		Tags:          &TagService{base},
	}
}

type base struct {
	db  *gorm.DB
	cfg config.StoreConfig
	log zerolog.Logger
}

// withRetry runs fn, retrying transient store failures with doubling backoff
// up to the configured attempt bound. Every other error, ErrConflict
// included, surfaces to the caller unchanged.
func (b base) withRetry(ctx context.Context, fn func() error) error {
	attempts := b.cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := b.cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 50 * time.Millisecond
	}

	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, ErrTransientStore) || attempt >= attempts {
			return err
		}
		b.log.Warn().Err(err).Int("attempt", attempt).Msg("transient store failure, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}
