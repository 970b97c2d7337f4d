package crud

import (
	"context"
	"sync"

	"volentia/pkg/logger"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// User-facing notification messages (Italian, matching the product copy).
const (
	MsgLoadFailed    = "Impossibile caricare i dati"
	MsgSaveSuccess   = "Salvataggio completato"
	MsgSaveFailed    = "Errore durante il salvataggio"
	MsgDeleteSuccess = "Eliminazione completata"
	MsgDeleteFailed  = "Errore durante l'eliminazione"
)

// Notification is one transient user-visible message.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives the controller's transient user-visible messages.
// Every failure produces a notification; none propagates as an error.
type Notifier interface {
	Notify(ctx context.Context, level Level, message string)
}

// LogNotifier writes notifications to the structured log. Used where no
// client is attached to consume them.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, level Level, message string) {
	if level == LevelError {
		logger.Warn(ctx, "notification", "level", string(level), "message", message)
		return
	}
	logger.Info(ctx, "notification", "level", string(level), "message", message)
}

// RecordingNotifier keeps the most recent notifications so a transport
// layer can hand them back to the client as toasts.
type RecordingNotifier struct {
	mu   sync.Mutex
	last *Notification
	all  []Notification
}

func (r *RecordingNotifier) Notify(_ context.Context, level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := Notification{Level: level, Message: message}
	r.last = &n
	r.all = append(r.all, n)
}

// Last returns the most recent notification, or nil.
func (r *RecordingNotifier) Last() *Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return nil
	}
	n := *r.last
	return &n
}

// Drain returns all accumulated notifications and clears the buffer.
func (r *RecordingNotifier) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.all
	r.all = nil
	r.last = nil
	return out
}
