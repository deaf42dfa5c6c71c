// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry of features and loads the enabled ones with
// LoadAll, so features such as 'relations' and 'integrity' are developed and
// tested in isolation.
package loader
