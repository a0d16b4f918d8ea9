package pages

import (
	"sticker_factory_go/templates/partials"
)

// HomeView holds the data for the home page
type HomeView struct {
	Workspace   partials.WorkspaceView
	MaxUploadMB int
}
