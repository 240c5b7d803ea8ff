package schedule

import (
	"agendad/internal/providers"
	"agendad/internal/schedule/interfaces"
)

// LogNotifier is the in-repo delivery stand-in: it writes the agenda to the
// application log. The messenger transport replaces it at wiring time.
type LogNotifier struct {
	logger providers.Logger
}

func NewLogNotifier(logger providers.Logger) interfaces.NotifierInterface {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(chatID int64, lines []string) error {
	n.logger.Infof(providers.TypeApp, "Reminder for chat %d: %d agenda lines", chatID, len(lines))
	return nil
}
