// Package module is the contract between API modules and the code that mounts them.
// It sits apart from modkit so a module's ports type can import it without a cycle.
package module

import (
	phttp "channelhub/internal/platform/net/http"
)

// Module is a mountable slice of the API
type Module interface {
	Name() string
	// Prefix is the mount path, e.g. /channels
	Prefix() string
	MountRoutes(r phttp.Router)
	// Ports is what the module offers other modules, nil when nothing
	Ports() any
}
