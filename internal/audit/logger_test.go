package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dangerclosesec/geneql/internal/executor"
	"github.com/dangerclosesec/geneql/query/model"
	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	events   []executor.Event
	requests []*http.Request
	err      error
}

func (l *recordingLogger) LogQuery(_ context.Context, ev executor.Event, req *http.Request) error {
	l.events = append(l.events, ev)
	l.requests = append(l.requests, req)
	return l.err
}

func TestRequestContext(t *testing.T) {
	assert.Nil(t, RequestFromContext(context.Background()))

	req := httptest.NewRequest(http.MethodPost, "/api/query", nil)
	ctx := WithRequest(context.Background(), req)
	assert.Same(t, req, RequestFromContext(ctx))
}

func TestHookPassesRequest(t *testing.T) {
	rec := &recordingLogger{}
	hook := Hook(rec, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/check", nil)
	ev := executor.Event{Query: &model.Check{UserID: "u1", ResourceID: "doc1", Permission: "read"}}

	hook(WithRequest(context.Background(), req), ev)
	hook(context.Background(), ev)

	assert.Len(t, rec.events, 2)
	assert.Same(t, req, rec.requests[0])
	assert.Nil(t, rec.requests[1])
}

func TestHookLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	hook := Hook(&recordingLogger{err: errors.New("db down")}, logger)
	hook(context.Background(), executor.Event{Query: &model.Get{Entity: "User"}})

	assert.Contains(t, buf.String(), "failed to write audit log")
	assert.Contains(t, buf.String(), "db down")
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = &NoOpLogger{}
	assert.NoError(t, l.LogQuery(context.Background(), executor.Event{}, nil))
}
