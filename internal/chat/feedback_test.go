package chat

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentwire/scout/internal/talent"
)

func nowFixed() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

type stubFeedbackBackend struct {
	submitted []*talent.Feedback
	err       error
}

func (s *stubFeedbackBackend) SubmitFeedback(feedback *talent.Feedback) (*talent.FeedbackAck, error) {
	s.submitted = append(s.submitted, feedback)
	if s.err != nil {
		return nil, s.err
	}
	return &talent.FeedbackAck{Status: "ok"}, nil
}

func newTestRecorder(t *testing.T, backend FeedbackBackend) (*Recorder, *SessionStore, *Log) {
	t.Helper()

	fs := afero.NewMemMapFs()
	sessions := NewSessionStore(fs, "state", zap.NewNop())
	log := NewLog(fs, "state", zap.NewNop())

	return NewRecorder(backend, sessions, log, "scout-test", zap.NewNop()), sessions, log
}

func TestRecordDerivesContextFromLastQuery(t *testing.T) {
	backend := &stubFeedbackBackend{}
	recorder, sessions, log := newTestRecorder(t, backend)

	sessions.Adopt("S1")
	require.NoError(t, log.Append(NewQuery("rust developers", nowFixed())))
	require.NoError(t, log.Append(NewResponse("ok", "", results(1), nowFixed().Add(time.Second))))

	recorder.now = func() time.Time { return nowFixed().Add(7 * time.Second) }

	require.NoError(t, recorder.Record("p-0", "fb-0", talent.FeedbackLike))

	require.Len(t, backend.submitted, 1)
	feedback := backend.submitted[0]
	require.Equal(t, "S1", feedback.SessionID)
	require.Equal(t, "p-0", feedback.ProfileID)
	require.Equal(t, "fb-0", feedback.FeedbackID)
	require.Equal(t, talent.FeedbackLike, feedback.Type)
	require.Equal(t, "rust developers", feedback.QueryText)
	require.Equal(t, 7, feedback.TimeToFeedback)
	require.Equal(t, nowFixed().Format(time.RFC3339), feedback.SearchTimestamp)
	require.Equal(t, "scout-test", feedback.UserAgent)
}

func TestRecordWithoutPriorQuery(t *testing.T) {
	backend := &stubFeedbackBackend{}
	recorder, _, _ := newTestRecorder(t, backend)

	require.NoError(t, recorder.Record("p-0", "fb-0", talent.FeedbackDislike))

	require.Len(t, backend.submitted, 1)
	feedback := backend.submitted[0]
	require.Empty(t, feedback.QueryText)
	require.Empty(t, feedback.SearchTimestamp)
	require.Zero(t, feedback.TimeToFeedback)
	require.NotEmpty(t, feedback.SessionID, "a session id is created on demand")
}

func TestTimeToFeedbackNeverNegative(t *testing.T) {
	backend := &stubFeedbackBackend{}
	recorder, _, log := newTestRecorder(t, backend)

	// Clock skew between the restored log and the local clock.
	require.NoError(t, log.Append(NewQuery("java developers", nowFixed().Add(time.Minute))))
	recorder.now = nowFixed

	require.NoError(t, recorder.Record("p-0", "fb-0", talent.FeedbackLike))
	require.Zero(t, backend.submitted[0].TimeToFeedback)
}

func TestRecordFailureLeavesLogUntouched(t *testing.T) {
	backend := &stubFeedbackBackend{err: errors.New("backend unavailable")}
	recorder, _, log := newTestRecorder(t, backend)

	require.NoError(t, log.Append(NewQuery("android developers", nowFixed())))

	err := recorder.Record("p-0", "fb-0", talent.FeedbackLike)
	require.Error(t, err)

	// One-shot: no retry, no conversation mutation.
	require.Len(t, backend.submitted, 1)
	require.Equal(t, 1, log.Len())
}
