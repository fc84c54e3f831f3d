package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	to, name string
	err      error
}

func (f *fakeSender) SendWelcomeEmail(to, name string) error {
	f.to, f.name = to, name
	return f.err
}

func newTestJobService(t *testing.T, sender WelcomeSender) *JobService {
	t.Helper()
	logger := zerolog.Nop()
	cfg := &config.Config{Redis: config.RedisConfig{Address: "localhost:0"}}
	j := NewJobService(&logger, cfg, sender)
	t.Cleanup(func() { _ = j.Client.Close() })
	return j
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("jane@example.com", "Jane")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "jane@example.com", Name: "Jane"}, p)
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	sender := &fakeSender{}
	j := newTestJobService(t, sender)

	task, err := NewWelcomeEmailTask("jane@example.com", "Jane")
	require.NoError(t, err)

	require.NoError(t, j.Mux().ProcessTask(context.Background(), task))
	assert.Equal(t, "jane@example.com", sender.to)
	assert.Equal(t, "Jane", sender.name)
}

func TestHandleWelcomeEmailTask_SendFailureIsRetried(t *testing.T) {
	sendErr := errors.New("resend down")
	j := newTestJobService(t, &fakeSender{err: sendErr})

	task, err := NewWelcomeEmailTask("jane@example.com", "Jane")
	require.NoError(t, err)

	err = j.Mux().ProcessTask(context.Background(), task)
	require.ErrorIs(t, err, sendErr)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleWelcomeEmailTask_BadPayloadSkipsRetry(t *testing.T) {
	j := newTestJobService(t, &fakeSender{})

	err := j.Mux().ProcessTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("{")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}
