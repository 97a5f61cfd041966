// Command chapter2 opens an OpenGL 4.0 window and clears it every frame,
// showing an approximate frame rate in the title.
package main

import (
	"runtime"

	"github.com/stewi1014/glchapters/app"
)

func init() {
	// glfw and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	app.Main(app.Chapter{
		Title: "Chapter 2",
	})
}
