package model

// RequestKind names a request a UI surface can send to the host
type RequestKind string

const (
	// RequestOpenFile asks the host to pick a media file and return its content
	RequestOpenFile RequestKind = "openFile"

	// RequestChooseDir asks the host to pick or create a directory
	RequestChooseDir RequestKind = "chooseDir"

	// RequestNewWindow asks the host for an additional empty window
	RequestNewWindow RequestKind = "newWindow"

	// RequestSave persists the surface's project
	RequestSave RequestKind = "save"

	// RequestLoad picks a project descriptor and loads it
	RequestLoad RequestKind = "load"
)

// String returns the string representation of RequestKind
func (k RequestKind) String() string {
	return string(k)
}

// IsDialogBacked returns true if handling the request may show a native dialog
func (k RequestKind) IsDialogBacked() bool {
	return k == RequestOpenFile || k == RequestChooseDir || k == RequestSave || k == RequestLoad
}

// TouchesDisk returns true if the request may write to or read from a project location
func (k RequestKind) TouchesDisk() bool {
	return k == RequestSave || k == RequestLoad
}
