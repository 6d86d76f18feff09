package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/steamnick/nick-batcher/internal/roster"
)

// ShowImportDialog shows the CSV paste box. On confirm the pasted text is
// parsed and handed to onImport together with the per-line parse errors;
// the caller decides how to apply and report them.
func ShowImportDialog(window fyne.Window, onImport func(parsed []roster.ParsedLine, errs []roster.LineError)) {
	textEntry := widget.NewMultiLineEntry()
	textEntry.SetPlaceHolder("76561198000000001,Alice\n76561198000000002,Bob")
	textEntry.Wrapping = fyne.TextWrapOff

	hint := widget.NewLabel("One identifier,label pair per line. Import replaces the current table.")
	hint.Wrapping = fyne.TextWrapWord

	content := container.NewBorder(hint, nil, nil, nil, textEntry)

	d := dialog.NewCustomConfirm(
		"Import CSV",
		"Import",
		"Cancel",
		content,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			parsed, errs := roster.ParseCSV(textEntry.Text)
			onImport(parsed, errs)
		},
		window,
	)

	d.Resize(fyne.NewSize(ImportDialogWidth, ImportDialogHeight))
	d.Show()
}
