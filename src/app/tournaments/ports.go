package tournaments

import "errors"

// ErrCancelled is returned when the operator declines a confirmation.
var ErrCancelled = errors.New("cancelled by operator")

// Confirmer asks the operator to approve a destructive command.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Notifier shows a message to the operator.
type Notifier interface {
	Notify(message string)
}

// Metrics records service activity. Outcome is "ok", "rejected" or
// "cancelled".
type Metrics interface {
	CommandHandled(command, outcome string)
	RoundGenerated(matches, repeats int)
	MatchCompleted()
	SaveFailed()
}

type nopMetrics struct{}

func (nopMetrics) CommandHandled(string, string) {}
func (nopMetrics) RoundGenerated(int, int)      {}
func (nopMetrics) MatchCompleted()              {}
func (nopMetrics) SaveFailed()                  {}
