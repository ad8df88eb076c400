package app

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// ConfigChangedMsg is sent when the config file changes on disk
type ConfigChangedMsg struct{}

// StatusExpiredMsg clears the taskbar status unless a newer one replaced it
type StatusExpiredMsg struct {
	Seq int
}
