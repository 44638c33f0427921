package protocol

const (
	// TopicNavigate asks the front end to route to the payload path.
	TopicNavigate = "navigate"
	// TopicSetTheme asks the front end to switch to the payload theme.
	TopicSetTheme = "set-theme"
)

// Event is the frame written to front-end listeners. Payload is a bare
// string; no structured data travels on these topics.
type Event struct {
	Topic   string `json:"topic"`
	Payload string `json:"payload"`
}
