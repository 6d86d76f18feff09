package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/steamnick/nick-batcher/internal/model"
)

// EntryRow is one editable roster row: identifier field, label field,
// per-row apply status, and a remove button.
type EntryRow struct {
	widget.BaseWidget

	entry *model.Entry

	idEntry     *widget.Entry
	labelEntry  *widget.Entry
	statusLabel *widget.Label
	removeBtn   *widget.Button

	// updating suppresses OnChanged while the row is being re-bound to
	// another entry during list reuse.
	updating bool

	onEditSteamID func(rowID, value string)
	onEditLabel   func(rowID, value string)
	onRemove      func(rowID string)
}

// NewEntryRow creates an entry row bound to a placeholder entry; the list
// re-binds it via UpdateEntry.
func NewEntryRow() *EntryRow {
	er := &EntryRow{
		entry: &model.Entry{ID: "placeholder", Status: model.EntryStatusPending},
	}
	er.ExtendBaseWidget(er)
	er.createUI()
	return er
}

// SetCallbacks sets the edit and remove callbacks
func (er *EntryRow) SetCallbacks(
	onEditSteamID func(rowID, value string),
	onEditLabel func(rowID, value string),
	onRemove func(rowID string),
) {
	er.onEditSteamID = onEditSteamID
	er.onEditLabel = onEditLabel
	er.onRemove = onRemove
}

// UpdateEntry re-binds the row to an entry and refreshes the visuals
func (er *EntryRow) UpdateEntry(entry *model.Entry) {
	if entry == nil {
		return
	}

	er.entry = entry

	er.updating = true
	if er.idEntry.Text != entry.SteamID {
		er.idEntry.SetText(entry.SteamID)
	}
	if er.labelEntry.Text != entry.Label {
		er.labelEntry.SetText(entry.Label)
	}
	er.updating = false

	er.updateStatus()
	er.Refresh()
}

// createUI creates the UI components
func (er *EntryRow) createUI() {
	er.idEntry = widget.NewEntry()
	er.idEntry.SetPlaceHolder(SteamIDPlaceholder)
	er.idEntry.OnChanged = func(value string) {
		if er.updating || er.onEditSteamID == nil {
			return
		}
		er.onEditSteamID(er.entry.ID, value)
	}

	er.labelEntry = widget.NewEntry()
	er.labelEntry.SetPlaceHolder(LabelPlaceholder)
	er.labelEntry.OnChanged = func(value string) {
		if er.updating || er.onEditLabel == nil {
			return
		}
		er.onEditLabel(er.entry.ID, value)
	}

	er.statusLabel = widget.NewLabel("")
	er.statusLabel.Alignment = fyne.TextAlignTrailing
	er.statusLabel.Truncation = fyne.TextTruncateEllipsis

	er.removeBtn = widget.NewButton(IconRemove, func() {
		if er.onRemove != nil {
			er.onRemove(er.entry.ID)
		}
	})
	er.removeBtn.Importance = widget.LowImportance
}

// updateStatus renders the per-row marker for the current batch state
func (er *EntryRow) updateStatus() {
	switch er.entry.Status {
	case model.EntryStatusApplied:
		er.statusLabel.Importance = widget.SuccessImportance
		er.statusLabel.SetText(IconApplied + " " + er.entry.Status.String())
	case model.EntryStatusFailed:
		er.statusLabel.Importance = widget.DangerImportance
		er.statusLabel.SetText(IconFailed + " " + truncateError(er.entry.LastError))
	case model.EntryStatusApplying:
		er.statusLabel.Importance = widget.HighImportance
		er.statusLabel.SetText(IconApplying + " " + er.entry.Status.String())
	default:
		er.statusLabel.Importance = widget.MediumImportance
		er.statusLabel.SetText(IconPending + " " + er.entry.Status.String())
	}
}

// CreateRenderer creates the widget renderer
func (er *EntryRow) CreateRenderer() fyne.WidgetRenderer {
	// Fix the identifier column width with a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	right := container.NewHBox(
		fixedWidth(StatusLabelWidth, er.statusLabel),
		er.removeBtn,
	)

	layout := container.NewBorder(nil, nil,
		fixedWidth(SteamIDFieldWidth, er.idEntry),
		right,
		er.labelEntry,
	)

	return widget.NewSimpleRenderer(layout)
}

// truncateError keeps failure text short enough for the status column
func truncateError(msg string) string {
	if msg == "" {
		return model.EntryStatusFailed.String()
	}
	if len(msg) > MaxInlineErrorLength {
		return msg[:MaxInlineErrorLength] + "…"
	}
	return msg
}
