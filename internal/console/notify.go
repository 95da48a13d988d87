package console

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast is a transient, non-blocking notification for the user.
// Sticky toasts stay until dismissed.
type Toast struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Sticky  bool   `json:"sticky,omitempty"`
}

type Notifier interface {
	Notify(Toast)
}

type NotifierFunc func(Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }

type NopNotifier struct{}

func (NopNotifier) Notify(Toast) {}
