// Package ui contains the Fyne desktop implementation of the host contracts:
// native file dialogs (host.Dialogs) and project windows (host.Surface). A
// window never touches the disk itself; every file operation goes through a
// host.Bridge to the orchestrator. All UI strings are localized via
// Localization.
package ui
