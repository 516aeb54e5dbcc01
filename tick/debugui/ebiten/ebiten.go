// Package ebiten hosts the debug overlay's Dear ImGui context on the ebiten
// window the viewer draws into.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// ImguiBackend is stored as a tick resource. Call BeginFrame before the
// scheduler runs and EndFrame after it, then Draw on top of the board.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and the ebiten window it draws into.
// ImGui layout persistence is disabled so no imgui.ini is written next to
// the replay being viewed.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}
