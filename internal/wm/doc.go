/*
Package wm implements the state core of a floating window manager.

The package keeps a registry of live windows, maintains a dense z-order over
them, clamps dragged windows into the bounding container and drives the
floating/fullscreen/minimized transitions of each window. It knows nothing
about drawing: a renderer reads snapshots and forwards pointer gestures.

Example usage:

	mgr := wm.NewManager()
	desk := wm.NewContainer(mgr)
	desk.Resize(120, 40)

	win, err := desk.Open(wm.Options{Name: "Notes"})
	if err != nil {
		// handle error
	}
	_ = win.PointerDown(true)
	_ = win.DragMove(10, 4)
	_ = win.DragEnd(win.DragPoint())
*/
package wm
