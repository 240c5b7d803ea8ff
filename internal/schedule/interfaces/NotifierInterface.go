package interfaces

// NotifierInterface delivers a rendered agenda to a chat. The actual
// messenger transport lives outside this repository.
type NotifierInterface interface {
	Notify(chatID int64, lines []string) error
}
