package out

import (
	"context"
	"fmt"
	"io"
	"time"

	"wearlog/internal/modules/alert/domain"
	alertout "wearlog/internal/modules/alert/port/out"
)

// ConsoleNotifier prints intents to a writer. It is the fallback channel
// when no notifier plugin is configured.
type ConsoleNotifier struct {
	w io.Writer
}

func NewConsoleNotifier(w io.Writer) alertout.Notifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Notify(_ context.Context, intent domain.Intent) error {
	_, err := fmt.Fprintf(n.w, "[%s] %s: %s (%s)\n",
		intent.At.Format(time.RFC3339), intent.Title, intent.Body, intent.Kind)
	return err
}

func (n *ConsoleNotifier) Describe(_ context.Context) (alertout.Description, error) {
	return alertout.Description{Name: "console"}, nil
}
