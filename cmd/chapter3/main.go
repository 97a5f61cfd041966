// Command chapter3 draws a coloured quad from two vertex buffers with a
// passthrough shader program.
package main

import (
	"runtime"

	"github.com/stewi1014/glchapters/app"
	"github.com/stewi1014/glchapters/programs"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	app.Main(app.Chapter{
		Title:   "Chapter 3",
		Program: programs.Colour,
	})
}
