package ui

import (
	"context"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/steamnick/nick-batcher/internal/config"
	"github.com/steamnick/nick-batcher/internal/steam"
)

// sessionTestTimeout bounds the credential round-trip behind the Test button
const sessionTestTimeout = 10 * time.Second

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	ownIDEntry        *widget.Entry
	sessionEntry      *widget.Entry
	sessionTestBtn    *widget.Button
	baseURLEntry      *widget.Entry
	applyDelayEntry   *widget.Entry
	cleanupDelayEntry *widget.Entry
	retryDelayEntry   *widget.Entry
}

// NewSettingsDialog creates a new settings dialog. onSaved fires after the
// values were persisted so the caller can rebuild the client.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.ownIDEntry = widget.NewEntry()
	sd.ownIDEntry.SetPlaceHolder("your 17-digit profile identifier (for the cleanup scan)")

	sd.sessionEntry = widget.NewPasswordEntry()
	sd.sessionEntry.SetPlaceHolder("leave empty to harvest from the signed-in session")

	sd.sessionTestBtn = widget.NewButton("Test session", sd.onTestSession)
	sd.sessionTestBtn.Importance = widget.LowImportance

	sd.baseURLEntry = widget.NewEntry()
	sd.baseURLEntry.SetPlaceHolder(config.DefaultBaseURL)

	sd.applyDelayEntry = widget.NewEntry()
	sd.applyDelayEntry.SetPlaceHolder("ms between apply requests")

	sd.cleanupDelayEntry = widget.NewEntry()
	sd.cleanupDelayEntry.SetPlaceHolder("ms between cleanup requests")

	sd.retryDelayEntry = widget.NewEntry()
	sd.retryDelayEntry.SetPlaceHolder("ms before the single retry")

	form := container.NewVBox(
		widget.NewLabel("Account"),
		widget.NewSeparator(),

		widget.NewLabel("Profile identifier:"),
		sd.ownIDEntry,

		widget.NewLabel("Session token:"),
		sd.sessionEntry,
		sd.sessionTestBtn,

		widget.NewLabel("Service base URL:"),
		sd.baseURLEntry,

		widget.NewSeparator(),
		widget.NewLabel("Request pacing"),
		widget.NewSeparator(),

		widget.NewLabel("Apply delay (ms):"),
		sd.applyDelayEntry,

		widget.NewLabel("Cleanup delay (ms):"),
		sd.cleanupDelayEntry,

		widget.NewLabel("Retry delay (ms):"),
		sd.retryDelayEntry,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.ownIDEntry.SetText(sd.settings.GetOwnSteamID())
	sd.sessionEntry.SetText(sd.settings.GetSessionToken())
	sd.baseURLEntry.SetText(sd.settings.GetBaseURL())
	sd.applyDelayEntry.SetText(strconv.Itoa(int(sd.settings.GetApplyDelay().Milliseconds())))
	sd.cleanupDelayEntry.SetText(strconv.Itoa(int(sd.settings.GetCleanupDelay().Milliseconds())))
	sd.retryDelayEntry.SetText(strconv.Itoa(int(sd.settings.GetRetryDelay().Milliseconds())))
}

// onTestSession performs one credential round-trip with the values currently
// in the dialog, without saving them.
func (sd *SettingsDialog) onTestSession() {
	token := sd.sessionEntry.Text
	base := sd.baseURLEntry.Text
	if base == "" {
		base = config.DefaultBaseURL
	}

	var creds steam.CredentialProvider
	if token != "" {
		creds = steam.StaticCredentials{Token: token}
	} else {
		creds = steam.NewSessionCredentials(base, nil)
	}

	sd.sessionTestBtn.Disable()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sessionTestTimeout)
		defer cancel()

		_, err := creds.SessionID(ctx)

		fyne.Do(func() {
			sd.sessionTestBtn.Enable()
			if err != nil {
				dialog.ShowError(err, sd.window)
				return
			}
			dialog.ShowInformation("Session", "Session token available", sd.window)
		})
	}()
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	sd.settings.SetOwnSteamID(sd.ownIDEntry.Text)
	sd.settings.SetSessionToken(sd.sessionEntry.Text)
	sd.settings.SetBaseURL(sd.baseURLEntry.Text)

	if ms, err := strconv.Atoi(sd.applyDelayEntry.Text); err == nil {
		sd.settings.SetApplyDelay(ms)
	}
	if ms, err := strconv.Atoi(sd.cleanupDelayEntry.Text); err == nil {
		sd.settings.SetCleanupDelay(ms)
	}
	if ms, err := strconv.Atoi(sd.retryDelayEntry.Text); err == nil {
		sd.settings.SetRetryDelay(ms)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation("Settings", "Settings saved", sd.window)
}
