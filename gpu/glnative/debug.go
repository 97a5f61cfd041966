package glnative

import (
	"context"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DebugExtension is the extension that provides glDebugMessageCallback on
// contexts older than 4.3.
const DebugExtension = "GL_KHR_debug"

// EnableDebugOutput forwards driver debug messages to logger.
// It reports false and does nothing when the context lacks GL_KHR_debug.
func (a *API) EnableDebugOutput(logger *slog.Logger) bool {
	if !a.HasExtension(DebugExtension) {
		return false
	}

	gl.DebugMessageCallback(func(
		source,
		gltype,
		id,
		severity uint32,
		length int32,
		message string,
		user unsafe.Pointer,
	) {
		logger.Log(context.Background(), debugLevel(severity), message,
			"source", debugSource(source),
			"type", debugType(gltype),
			"id", id,
		)
	}, nil)
	gl.Enable(gl.DEBUG_OUTPUT)
	return true
}

func debugLevel(severity uint32) slog.Level {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return slog.LevelError
	case gl.DEBUG_SEVERITY_MEDIUM:
		return slog.LevelWarn
	case gl.DEBUG_SEVERITY_LOW:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

func debugSource(source uint32) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "api"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "application"
	case gl.DEBUG_SOURCE_OTHER:
		return "other"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "shaderCompiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "thirdParty"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "windowSystem"
	}
	return "unknownSource"
}

func debugType(gltype uint32) string {
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		return "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "deprecatedBehavior"
	case gl.DEBUG_TYPE_MARKER:
		return "marker"
	case gl.DEBUG_TYPE_OTHER:
		return "other"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "performance"
	case gl.DEBUG_TYPE_POP_GROUP:
		return "popGroup"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "portability"
	case gl.DEBUG_TYPE_PUSH_GROUP:
		return "pushGroup"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "undefinedBehavior"
	}
	return "unknownType"
}
