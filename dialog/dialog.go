// Package dialog reports fatal errors in a GTK message box, for when the
// program was started from a desktop launcher and stderr is not visible.
package dialog

import (
	"fmt"
	"strings"

	"github.com/gotk3/gotk3/gtk"
)

// ShowError blocks until the user dismisses a modal error dialog describing
// err. It returns an error if GTK could not be initialised, typically
// because there is no display.
func ShowError(title string, err error) error {
	if initErr := gtk.InitCheck(nil); initErr != nil {
		return fmt.Errorf("gtk.InitCheck failed: %w", initErr)
	}

	primary, secondary := splitMessage(err)

	dialog := gtk.MessageDialogNew(
		nil,
		gtk.DIALOG_MODAL,
		gtk.MESSAGE_ERROR,
		gtk.BUTTONS_CLOSE,
		"%s",
		primary,
	)
	dialog.SetTitle(title)
	if secondary != "" {
		dialog.FormatSecondaryText("%s", secondary)
	}

	messageArea, areaErr := dialog.GetMessageArea()
	if areaErr == nil {
		messageArea.GetChildren().Foreach(func(item interface{}) {
			if widget, ok := item.(*gtk.Widget); ok {
				l, err := gtk.WidgetToLabel(widget)
				if err != nil {
					return
				}

				l.SetSelectable(true)
			}
		})
	}

	dialog.SetKeepAbove(true)
	dialog.Run()
	dialog.Destroy()
	return nil
}

// splitMessage puts the first line of err in the dialog heading and the
// rest, such as a shader info log, in the secondary text.
func splitMessage(err error) (primary, secondary string) {
	primary, secondary, _ = strings.Cut(strings.TrimSpace(err.Error()), "\n")
	return primary, strings.TrimSpace(secondary)
}
