// Package ipc lets a second launch of the editor hand its work to the running
// instance. The running instance holds a flock-based lock and serves JSON-RPC
// on a Unix domain socket; a later launch that cannot take the lock dials the
// socket and forwards "open this project" or "open a window".
package ipc
