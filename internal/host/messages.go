package host

import (
	"github.com/proteus-audio/proteus/internal/model"
	"github.com/proteus-audio/proteus/internal/platform"
)

// Request is one of the typed requests a surface can send.
type Request interface {
	Kind() model.RequestKind
	isRequest()
}

// Response is the typed answer to a Request.
type Response interface {
	Kind() model.RequestKind
	isResponse()
}

// OpenFileRequest asks for a media file picked by the user.
type OpenFileRequest struct{}

// ChooseDirRequest asks for a directory picked or created by the user.
type ChooseDirRequest struct{}

// NewWindowRequest asks for an additional empty surface.
type NewWindowRequest struct{}

// SaveRequest persists Project.
type SaveRequest struct {
	Project model.Project `json:"project"`
}

// LoadRequest asks the user for a project descriptor and loads it.
type LoadRequest struct{}

func (OpenFileRequest) Kind() model.RequestKind  { return model.RequestOpenFile }
func (ChooseDirRequest) Kind() model.RequestKind { return model.RequestChooseDir }
func (NewWindowRequest) Kind() model.RequestKind { return model.RequestNewWindow }
func (SaveRequest) Kind() model.RequestKind      { return model.RequestSave }
func (LoadRequest) Kind() model.RequestKind      { return model.RequestLoad }

func (OpenFileRequest) isRequest()  {}
func (ChooseDirRequest) isRequest() {}
func (NewWindowRequest) isRequest() {}
func (SaveRequest) isRequest()      {}
func (LoadRequest) isRequest()      {}

// OpenFileResponse carries a fully buffered file, or Canceled.
type OpenFileResponse struct {
	Canceled bool                `json:"canceled,omitempty"`
	FileName string              `json:"fileName,omitempty"`
	FilePath string              `json:"filePath,omitempty"`
	Src      string              `json:"src,omitempty"` // data URI with the full content
	Type     string              `json:"type,omitempty"`
	Size     int64               `json:"size,omitempty"`
	Tags     *platform.AudioTags `json:"tags,omitempty"`
}

// ChooseDirResponse carries a directory with a trailing separator, or Canceled.
type ChooseDirResponse struct {
	Canceled bool   `json:"canceled,omitempty"`
	Path     string `json:"path,omitempty"`
}

// NewWindowResponse names the created surface.
type NewWindowResponse struct {
	Surface SurfaceID `json:"surface"`
}

// ProjectResponse answers save and load. Found is false for a canceled
// dialog or a location holding no project; Tracks is nil then.
type ProjectResponse struct {
	Op       model.RequestKind `json:"-"` // RequestSave or RequestLoad
	Tracks   []model.Track     `json:"tracks"`
	Found    bool              `json:"found"`
	Location string            `json:"location"`
	Name     string            `json:"name,omitempty"`
}

// Project returns the project described by a found response.
func (r *ProjectResponse) Project() *model.Project {
	if r == nil || !r.Found {
		return nil
	}
	return &model.Project{Name: r.Name, Location: r.Location, Tracks: r.Tracks}
}

func (*OpenFileResponse) Kind() model.RequestKind  { return model.RequestOpenFile }
func (*ChooseDirResponse) Kind() model.RequestKind { return model.RequestChooseDir }
func (*NewWindowResponse) Kind() model.RequestKind { return model.RequestNewWindow }
func (r *ProjectResponse) Kind() model.RequestKind { return r.Op }

func (*OpenFileResponse) isResponse()  {}
func (*ChooseDirResponse) isResponse() {}
func (*NewWindowResponse) isResponse() {}
func (*ProjectResponse) isResponse()   {}
