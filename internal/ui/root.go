package ui

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/steamnick/nick-batcher/internal/config"
	"github.com/steamnick/nick-batcher/internal/model"
	"github.com/steamnick/nick-batcher/internal/roster"
	"github.com/steamnick/nick-batcher/internal/steam"
	"github.com/steamnick/nick-batcher/internal/workflow"
)

// RootUI wires the roster table, the prefix field, the batch controls, and
// the activity log into the main window.
type RootUI struct {
	window   fyne.Window
	settings *config.Settings
	roster   *roster.Roster
	client   *steam.Client
	svc      *workflow.Service

	prefixEntry *widget.Entry
	entryList   *widget.List
	applyBtn    *widget.Button
	cancelBtn   *widget.Button
	activityLog *ActivityLog
	settingsDlg *SettingsDialog

	notificationLabel     *widget.Label
	notificationContainer *fyne.Container

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc

	content fyne.CanvasObject
}

// NewRootUI creates the main UI bound to the given roster, client, and
// batch service.
func NewRootUI(
	window fyne.Window,
	settings *config.Settings,
	rst *roster.Roster,
	client *steam.Client,
	svc *workflow.Service,
) *RootUI {
	r := &RootUI{
		window:   window,
		settings: settings,
		roster:   rst,
		client:   client,
		svc:      svc,
	}

	svc.SetUpdateCallback(r.onEntryUpdate)
	svc.SetLogCallback(r.onWorkflowLog)

	r.setupUI()
	return r
}

// Content returns the window content
func (r *RootUI) Content() fyne.CanvasObject {
	return r.content
}

// CredentialsFor picks the session provider for the current settings: the
// manual token when one is configured, otherwise harvesting from the
// signed-in community session.
func CredentialsFor(settings *config.Settings) steam.CredentialProvider {
	if token := settings.GetSessionToken(); token != "" {
		return steam.StaticCredentials{Token: token}
	}
	return steam.NewSessionCredentials(settings.GetBaseURL(), nil)
}

// setupUI creates all UI components
func (r *RootUI) setupUI() {
	r.prefixEntry = widget.NewEntry()
	r.prefixEntry.SetPlaceHolder(PrefixPlaceholder)
	r.prefixEntry.SetText(r.settings.GetPrefix())
	r.prefixEntry.OnChanged = func(value string) {
		r.settings.SetPrefix(value)
	}

	addBtn := widget.NewButton("Add Row", r.onAddRow)
	importBtn := widget.NewButton("Import CSV", r.onImportClick)
	exportBtn := widget.NewButton("Export CSV", r.onExportClick)
	resolveBtn := widget.NewButton("Resolve IDs", r.onResolveClick)

	r.applyBtn = widget.NewButton("Apply", r.onApplyClick)
	r.applyBtn.Importance = widget.HighImportance

	r.cancelBtn = widget.NewButton("Cancel", r.onCancelClick)
	r.cancelBtn.Importance = widget.DangerImportance
	r.cancelBtn.Hide()

	settingsBtn := widget.NewButton(IconSettings, r.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	toolbar := container.NewHBox(
		addBtn,
		importBtn,
		exportBtn,
		resolveBtn,
		r.applyBtn,
		r.cancelBtn,
		widget.NewSeparator(),
		settingsBtn,
	)

	prefixRow := container.NewBorder(nil, nil, widget.NewLabel("Prefix:"), nil, r.prefixEntry)

	r.notificationLabel = widget.NewLabel("")
	r.notificationLabel.Wrapping = fyne.TextWrapWord
	r.notificationContainer = container.NewVBox(r.notificationLabel)
	r.notificationContainer.Hide()

	r.entryList = widget.NewList(
		func() int {
			return r.roster.Len()
		},
		func() fyne.CanvasObject {
			row := NewEntryRow()
			row.SetCallbacks(r.onEditSteamID, r.onEditLabel, r.onRemoveRow)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			entries := r.roster.Entries()
			if int(id) >= len(entries) {
				return
			}
			obj.(*EntryRow).UpdateEntry(entries[id])
		},
	)

	r.activityLog = NewActivityLog()
	r.settingsDlg = NewSettingsDialog(r.settings, r.window, r.onSettingsSaved)

	// Keep the log a fixed strip at the bottom regardless of line count
	logSpacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
	logSpacer.SetMinSize(fyne.NewSize(0, ActivityLogHeight))
	logStrip := container.NewStack(logSpacer, r.activityLog.Widget())

	top := container.NewVBox(toolbar, prefixRow, r.notificationContainer)

	r.content = container.NewBorder(top, logStrip, nil, nil, r.entryList)
}

// onAddRow appends an empty roster row
func (r *RootUI) onAddRow() {
	r.roster.Add("", "")
	r.entryList.Refresh()
}

// onEditSteamID handles identifier edits from a row
func (r *RootUI) onEditSteamID(rowID, value string) {
	r.roster.SetSteamID(rowID, value)
}

// onEditLabel handles label edits from a row
func (r *RootUI) onEditLabel(rowID, value string) {
	r.roster.SetLabel(rowID, value)
}

// onRemoveRow handles row removal
func (r *RootUI) onRemoveRow(rowID string) {
	r.roster.Remove(rowID)
	r.entryList.Refresh()
}

// onImportClick opens the CSV paste dialog. Valid lines replace the whole
// table; malformed lines are skipped and reported.
func (r *RootUI) onImportClick() {
	ShowImportDialog(r.window, func(parsed []roster.ParsedLine, errs []roster.LineError) {
		entries := make([]*model.Entry, 0, len(parsed))
		for _, line := range parsed {
			entries = append(entries, model.NewEntry(line.SteamID, line.Label))
		}
		r.roster.Replace(entries)
		r.entryList.Refresh()

		for _, le := range errs {
			r.activityLog.Append("import: " + le.Error())
		}

		if len(errs) > 0 {
			r.showNotification(fmt.Sprintf("Imported %d rows, skipped %d malformed lines", len(entries), len(errs)))
			return
		}
		r.showNotification(fmt.Sprintf("Imported %d rows", len(entries)))
	})
}

// onExportClick copies the table as CSV to the clipboard
func (r *RootUI) onExportClick() {
	if r.roster.Len() == 0 {
		r.showNotification("Nothing to export")
		return
	}

	r.window.Clipboard().SetContent(roster.ExportCSV(r.roster.Entries()))
	r.showNotification(fmt.Sprintf("Copied %d rows as CSV", r.roster.Len()))
}

// onResolveClick resolves vanity names left in identifier fields into
// numeric identifiers, one lookup at a time.
func (r *RootUI) onResolveClick() {
	type pendingResolve struct {
		rowID  string
		vanity string
	}

	var pending []pendingResolve
	for _, e := range r.roster.Entries() {
		if e.SteamID != "" && !model.ValidSteamID(e.SteamID) {
			pending = append(pending, pendingResolve{rowID: e.ID, vanity: e.SteamID})
		}
	}

	if len(pending) == 0 {
		r.showNotification("No vanity names to resolve")
		return
	}

	if !r.setRunning(true) {
		return
	}
	r.showNotification(fmt.Sprintf("Resolving %d vanity names…", len(pending)))

	go func() {
		ctx := context.Background()
		resolved := 0

		for i, p := range pending {
			steamID, err := r.client.ResolveVanity(ctx, p.vanity)
			if err != nil {
				log.Printf("resolve: %q failed: %v", p.vanity, err)
				r.activityLog.Append(fmt.Sprintf("resolve: %q failed: %v", p.vanity, err))
			} else {
				resolved++
				r.activityLog.Append(fmt.Sprintf("resolve: %q is %s", p.vanity, steamID))
				fyne.Do(func() {
					r.roster.SetSteamID(p.rowID, steamID)
					r.entryList.Refresh()
				})
			}

			if i < len(pending)-1 {
				time.Sleep(r.settings.GetApplyDelay())
			}
		}

		fyne.Do(func() {
			r.setRunning(false)
			r.showNotification(fmt.Sprintf("Resolved %d of %d vanity names", resolved, len(pending)))
		})
	}()
}

// onApplyClick validates the table and launches the batch: a cleanup pass
// over the friends page when a prefix is set, then one apply request per row.
func (r *RootUI) onApplyClick() {
	if r.roster.Len() == 0 {
		r.showNotification("Nothing to apply")
		return
	}

	// Validation failures abort before any request is sent
	if err := workflow.ValidateEntries(r.roster.Entries()); err != nil {
		dialog.ShowError(err, r.window)
		return
	}

	if !r.setRunning(true) {
		return
	}

	r.roster.ResetStatuses()
	r.entryList.Refresh()
	r.activityLog.Clear()
	r.applyBtn.Disable()
	r.cancelBtn.Show()
	r.showNotification("Applying nicknames…")

	ctx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	prefix := r.settings.GetPrefix()
	entries := r.roster.Entries()

	go func() {
		defer cancel()

		var friends []steam.Friend
		if prefix != "" {
			ownID := r.settings.GetOwnSteamID()
			if !model.ValidSteamID(ownID) {
				r.activityLog.Append("cleanup: skipped, profile identifier not configured")
			} else {
				var err error
				friends, err = r.client.Friends(ctx, ownID)
				if err != nil {
					// Cleanup is best effort; the apply pass still runs
					log.Printf("cleanup: friends scan failed: %v", err)
					r.activityLog.Append(fmt.Sprintf("cleanup: friends scan failed: %v", err))
				}
			}
		}

		report, err := r.svc.Run(ctx, entries, prefix, friends)

		fyne.Do(func() {
			r.setRunning(false)
			r.applyBtn.Enable()
			r.cancelBtn.Hide()
			r.entryList.Refresh()

			if err != nil {
				r.showNotification("Batch aborted: " + err.Error())
				return
			}
			r.showNotification("Batch finished: " + report.Summary())
		})
	}()
}

// onCancelClick stops the running batch between rows
func (r *RootUI) onCancelClick() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	r.showNotification("Cancelling after the current row…")
}

// onShowSettings opens the settings dialog
func (r *RootUI) onShowSettings() {
	r.settingsDlg.Show()
}

// onSettingsSaved rebinds the client and service to the saved settings
func (r *RootUI) onSettingsSaved() {
	r.client.SetBaseURL(r.settings.GetBaseURL())
	r.client.SetCredentials(CredentialsFor(r.settings))
	r.svc.SetDelays(
		r.settings.GetApplyDelay(),
		r.settings.GetCleanupDelay(),
		r.settings.GetRetryDelay(),
	)
}

// onEntryUpdate refreshes the table when the batch changes a row status.
// Called from the worker goroutine.
func (r *RootUI) onEntryUpdate(*model.Entry) {
	fyne.Do(func() {
		r.entryList.Refresh()
	})
}

// onWorkflowLog appends a batch progress line. Called from the worker
// goroutine; ActivityLog handles the thread hop itself.
func (r *RootUI) onWorkflowLog(line string) {
	r.activityLog.Append(line)
}

// showNotification displays a status message above the table
func (r *RootUI) showNotification(message string) {
	r.notificationLabel.SetText(message)
	r.notificationContainer.Show()
}

// setRunning flips the batch guard; starting returns false when a batch or
// a resolve pass is already in flight.
func (r *RootUI) setRunning(running bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if running && r.running {
		return false
	}
	r.running = running
	return true
}
