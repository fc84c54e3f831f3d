package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/lib/job"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users UserStore
	// jobs may be nil, in which case no welcome email is queued.
	jobs       job.Enqueuer
	bcryptCost int
}

func NewUserService(users UserStore, jobs job.Enqueuer) *UserService {
	return &UserService{
		users:      users,
		jobs:       jobs,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// NormalizeEmail trims and lowercases an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new user with a bcrypt-hashed password and queues the
// welcome email. A queueing failure is logged, not returned.
func (s *UserService) Register(ctx context.Context, payload *model.NewUser) (*model.User, error) {
	normalized := *payload
	normalized.Email = NormalizeEmail(payload.Email)

	if err := validation.Check(&normalized); err != nil {
		return nil, err
	}

	switch existing, err := s.users.GetUserWithEmail(ctx, normalized.Email); {
	case err == nil && existing != nil:
		return nil, errUserExists()
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(normalized.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	normalized.Password = string(hash)

	user, err := s.users.AddUser(ctx, &normalized)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Int64("user_id", user.ID).Msg("user registered")

	if s.jobs != nil {
		if err := s.enqueueWelcome(ctx, user); err != nil {
			logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to enqueue welcome email")
		}
	}

	return user, nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, user *model.User) error {
	task, err := job.NewWelcomeEmailTask(user.Email, user.Name)
	if err != nil {
		return err
	}
	_, err = s.jobs.EnqueueContext(ctx, task)
	return err
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetUserWithID(ctx, id)
}

// errUserExists matches what sqlerr produces for a users_email_key
// violation, which covers the race between the lookup and the insert.
func errUserExists() error {
	code := "USER_ALREADY_EXISTS"
	return errs.NewBadRequestError("A user with this email already exists", true, &code,
		[]errs.FieldError{{Field: "email", Error: "A user with this email already exists"}}, nil)
}
