package chat

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const conversationFile = "conversation.json"

// Log is the ordered, append-only conversation history. Every append writes
// the whole log back to durable storage; conversations are short enough that
// simplicity wins over throughput here.
type Log struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger

	messages []Message
}

// NewLog restores the conversation from durable storage. Unparseable stored
// data is discarded and the log starts empty.
func NewLog(fs afero.Fs, dir string, logger *zap.Logger) *Log {
	l := &Log{
		fs:     fs,
		path:   filepath.Join(dir, conversationFile),
		logger: logger,
	}

	data, err := afero.ReadFile(fs, l.path)
	if err != nil {
		return l
	}

	if err := json.Unmarshal(data, &l.messages); err != nil {
		logger.Warn("discarding unreadable conversation history",
			zap.String("path", l.path),
			zap.Error(err),
		)
		l.messages = nil
		_ = fs.Remove(l.path)
	}

	return l
}

// Append adds a message and synchronously persists the full log.
func (l *Log) Append(msg Message) error {
	l.messages = append(l.messages, msg)

	return l.persist()
}

// Messages returns the log in insertion order.
func (l *Log) Messages() []Message {
	return l.messages
}

func (l *Log) Len() int {
	return len(l.messages)
}

// LastQuery returns the most recent query message, or nil for a conversation
// without one.
func (l *Log) LastQuery() *Message {
	for i := len(l.messages) - 1; i >= 0; i-- {
		if l.messages[i].Kind == KindQuery {
			return &l.messages[i]
		}
	}

	return nil
}

// Clear drops all messages from memory and storage. The session id is kept:
// the backend may hold server-side session state worth preserving across a
// cleared conversation.
func (l *Log) Clear() error {
	l.messages = nil

	if err := l.fs.Remove(l.path); err != nil && !isNotExist(err) {
		return err
	}

	return nil
}

func (l *Log) persist() error {
	if err := l.fs.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(l.messages)
	if err != nil {
		return err
	}

	return afero.WriteFile(l.fs, l.path, data, 0o600)
}

func isNotExist(err error) bool {
	return os.IsNotExist(err)
}
