package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/lib/job"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	byEmail   map[string]*model.User
	added     *model.NewUser
	lookupErr error
	addErr    error
}

func (f *fakeUserStore) GetUserWithEmail(_ context.Context, email string) (*model.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, &errs.StoreError{Op: "users.get_by_email", Err: pgx.ErrNoRows}
}

func (f *fakeUserStore) GetUserWithID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, &errs.StoreError{Op: "users.get_by_id", Err: pgx.ErrNoRows}
}

func (f *fakeUserStore) AddUser(_ context.Context, payload *model.NewUser) (*model.User, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.added = payload
	return &model.User{ID: 7, Name: payload.Name, Email: payload.Email, Password: payload.Password}, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newTestUserService(store UserStore, jobs job.Enqueuer) *UserService {
	s := NewUserService(store, jobs)
	s.bcryptCost = bcrypt.MinCost
	return s
}

func TestRegister(t *testing.T) {
	store := &fakeUserStore{}
	jobs := &fakeEnqueuer{}
	s := newTestUserService(store, jobs)

	user, err := s.Register(context.Background(), &model.NewUser{
		Name:     "Jane",
		Email:    "  Jane@Example.COM ",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", user.Email)
	require.NotNil(t, store.added)
	assert.NotEqual(t, "correct horse", store.added.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.added.Password), []byte("correct horse")))

	require.Len(t, jobs.tasks, 1)
	assert.Equal(t, job.TaskWelcome, jobs.tasks[0].Type())

	var payload job.WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(jobs.tasks[0].Payload(), &payload))
	assert.Equal(t, job.WelcomeEmailPayload{To: "jane@example.com", Name: "Jane"}, payload)
}

func TestRegister_DoesNotMutatePayload(t *testing.T) {
	s := newTestUserService(&fakeUserStore{}, nil)
	payload := &model.NewUser{Name: "Jane", Email: "Jane@example.com", Password: "correct horse"}

	_, err := s.Register(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, "Jane@example.com", payload.Email)
	assert.Equal(t, "correct horse", payload.Password)
}

func TestRegister_ExistingEmail(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*model.User{
		"jane@example.com": {ID: 1, Email: "jane@example.com"},
	}}
	s := newTestUserService(store, &fakeEnqueuer{})

	_, err := s.Register(context.Background(), &model.NewUser{Name: "Jane", Email: "JANE@example.com", Password: "correct horse"})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Nil(t, store.added)
}

func TestRegister_LookupFailure(t *testing.T) {
	storeErr := &errs.StoreError{Op: "users.get_by_email", Err: errors.New("connection refused")}
	s := newTestUserService(&fakeUserStore{lookupErr: storeErr}, nil)

	_, err := s.Register(context.Background(), &model.NewUser{Name: "Jane", Email: "jane@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, storeErr)
}

func TestRegister_InvalidPayload(t *testing.T) {
	store := &fakeUserStore{}
	s := newTestUserService(store, nil)

	_, err := s.Register(context.Background(), &model.NewUser{Name: "Jane", Email: "not-an-email", Password: "short"})

	var invalid *errs.InvalidCriteriaError
	require.ErrorAs(t, err, &invalid)
	assert.Len(t, invalid.Fields, 2)
	assert.Nil(t, store.added)
}

func TestRegister_EnqueueFailureIsNotFatal(t *testing.T) {
	s := newTestUserService(&fakeUserStore{}, &fakeEnqueuer{err: errors.New("redis down")})

	user, err := s.Register(context.Background(), &model.NewUser{Name: "Jane", Email: "jane@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
}
