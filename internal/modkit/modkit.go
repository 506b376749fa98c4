package modkit

import "channelhub/internal/modkit/module"

// Module is the surface every API module exposes to the mounting code
type Module = module.Module
