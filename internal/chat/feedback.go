package chat

import (
	"time"

	"go.uber.org/zap"

	"github.com/talentwire/scout/internal/talent"
)

// FeedbackBackend is the slice of the backend API the recorder needs.
type FeedbackBackend interface {
	SubmitFeedback(feedback *talent.Feedback) (*talent.FeedbackAck, error)
}

// Recorder submits one-shot user judgments on result impressions. It reads
// the conversation log to reconstruct context but never mutates it.
type Recorder struct {
	backend   FeedbackBackend
	sessions  *SessionStore
	log       *Log
	userAgent string
	logger    *zap.Logger

	now func() time.Time
}

func NewRecorder(backend FeedbackBackend, sessions *SessionStore, log *Log, userAgent string, logger *zap.Logger) *Recorder {
	return &Recorder{
		backend:   backend,
		sessions:  sessions,
		log:       log,
		userAgent: userAgent,
		logger:    logger,
		now:       time.Now,
	}
}

// Record ties a like/dislike back to the impression identified by feedbackID.
// The originating query text and the seconds elapsed since it are derived
// best-effort from the log; both degrade to empty/zero rather than failing.
func (r *Recorder) Record(profileID, feedbackID string, judgment talent.FeedbackType) error {
	feedback := &talent.Feedback{
		SessionID:  r.sessions.GetOrCreate(),
		ProfileID:  profileID,
		FeedbackID: feedbackID,
		Type:       judgment,
		UserAgent:  r.userAgent,
	}

	if query := r.log.LastQuery(); query != nil {
		feedback.QueryText = query.Content

		if !query.Timestamp.IsZero() {
			feedback.SearchTimestamp = query.Timestamp.Format(time.RFC3339)

			if elapsed := int(r.now().Sub(query.Timestamp).Seconds()); elapsed > 0 {
				feedback.TimeToFeedback = elapsed
			}
		}
	}

	ack, err := r.backend.SubmitFeedback(feedback)
	if err != nil {
		r.logger.Warn("submitting feedback failed",
			zap.String("profile_id", profileID),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("feedback recorded",
		zap.String("profile_id", profileID),
		zap.String("judgment", string(judgment)),
		zap.String("status", ack.Status),
	)

	return nil
}
