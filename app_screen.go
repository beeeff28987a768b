package tela

// enterScreen puts the terminal into UI mode: raw input, alternate
// screen, mouse reporting, hidden cursor.
func (a *App) enterScreen() error {
	if err := a.terminal.EnterRawMode(); err != nil {
		return err
	}
	a.terminal.EnterAltScreen()
	a.terminal.Clear()
	if a.mouseEnabled {
		a.terminal.EnableMouse()
	}
	if a.cursorVisible {
		a.terminal.ShowCursor()
	} else {
		a.terminal.HideCursor()
	}
	return nil
}

// restoreScreen undoes enterScreen in reverse order. It runs on every
// exit path, fatal errors included, so the user's shell comes back
// usable.
func (a *App) restoreScreen() {
	a.terminal.ShowCursor()
	if a.mouseEnabled {
		a.terminal.DisableMouse()
	}
	a.terminal.ExitAltScreen()
	a.terminal.ExitRawMode()
}

// Suspend temporarily restores the terminal so a subprocess (editor,
// pager) can use it. Resume with the returned function; the next frame
// repaints fully since the subprocess may have written anywhere.
func (a *App) Suspend() (resume func() error, err error) {
	a.restoreScreen()
	return func() error {
		if err := a.enterScreen(); err != nil {
			return err
		}
		a.buffer.Invalidate()
		a.needsFullRedraw = true
		a.MarkDirty()
		return nil
	}, nil
}
