package window

// Window defines the interface for all window bodies. The chrome (title
// bar, border, buttons) is drawn by the compositor; a body only fills the
// inner area with plain text.
type Window interface {
	// View renders the body content
	View(width, height int) string

	// Identity
	Name() string
}
