package ipc

// OpenProjectRequest asks the running instance to open a project path.
type OpenProjectRequest struct {
	Path string `json:"path"`
}

// OpenProjectResponse reports whether a window was created.
type OpenProjectResponse struct {
	Opened bool `json:"opened"`
}

// NewWindowRequest asks the running instance for an empty window.
type NewWindowRequest struct{}

// NewWindowResponse names the created surface.
type NewWindowResponse struct {
	Surface string `json:"surface"`
}

// StatusRequest fetches instance status.
type StatusRequest struct{}

// StatusResponse describes the running instance.
type StatusResponse struct {
	Windows int `json:"windows"`
	PID     int `json:"pid"`
}
