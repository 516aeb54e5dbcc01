// Package debugui renders Dear ImGui windows from a tick pipeline.
// Windows are plain render callbacks collected in the Windows resource; the
// ImguiSystem defers them to the end of the frame so they draw after every
// other system has updated state.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/Speedy-Consoles/ants-insight/tick"
)

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Name   string
	Render func()
}

// Windows is the resource listing every overlay window and whether the
// overlay is shown at all.
type Windows struct {
	Visible bool
	Items   []ImguiItem
}

// Add appends a window to the overlay.
func (w *Windows) Add(name string, render func()) {
	w.Items = append(w.Items, ImguiItem{Name: name, Render: render})
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render functions of all overlay windows and
// refreshes ImguiInputState. It must run between the backend's BeginFrame
// and EndFrame.
type ImguiSystem struct {
	Windows    tick.Singleton[Windows]
	InputState tick.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *tick.Frame) {
	windows := i.Windows.Get()
	state := i.InputState.Get()
	if windows == nil || state == nil {
		return
	}

	if !windows.Visible {
		state.WantCaptureMouse = false
		state.WantCaptureKeyboard = false
		return
	}

	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range windows.Items {
		frame.Commands.Defer(item.Render)
	}
}
