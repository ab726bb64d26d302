package usecase

import "instagram-gateway/domain/repository"

// versionOpts turns an optional per-request Graph API version into call
// options. An empty version means the configured default applies.
func versionOpts(version string) []repository.CallOption {
	if version == "" {
		return nil
	}
	return []repository.CallOption{repository.WithVersion(version)}
}
