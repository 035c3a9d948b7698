package ports

import "go.trai.ch/gird/internal/core/domain"

// SettingsLoader loads the per-project tool settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=settings_loader.go -destination=mocks/mock_settings_loader.go -package=mocks
type SettingsLoader interface {
	// Load reads the settings for the project rooted at dir. A missing
	// settings file is not an error; defaults apply.
	Load(dir string) (domain.Settings, error)
}
