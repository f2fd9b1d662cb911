package app

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupInputHandlers routes window events to the driver and the orbit
// controls.
func SetupInputHandlers(app *App) {
	window := app.window

	// Window size callback
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		app.driver.OnResize(width, height)
	})

	// Framebuffer size and content scale both change the pixel ratio
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		app.updatePixelRatio()
	})
	window.SetContentScaleCallback(func(w *glfw.Window, x, y float32) {
		app.updatePixelRatio()
	})

	// Refresh callback
	window.SetRefreshCallback(func(w *glfw.Window) {
		app.RefreshRender()
	})

	// Mouse position callback
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		app.pointer.HandleCursorPos(xpos, ypos, app.driver.Viewport().Height, app.orbit)
	})

	// Mouse button callback
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		app.pointer.HandleMouseButtonEvent(button, action)
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		app.pointer.HandleScroll(yoff, app.orbit)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	// Losing focus mid-drag must not leave a gesture stuck
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		app.pointer.SetEnabled(focused)
	})
}
