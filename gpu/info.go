package gpu

import "log/slog"

// LogVersion reports the version and renderer strings of the current context.
func LogVersion(logger *slog.Logger, api API) {
	logger.Info("OpenGL version",
		"version", api.GetString(Version),
		"renderer", api.GetString(Renderer),
	)
}
