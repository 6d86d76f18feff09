package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/steamnick/nick-batcher/internal/config"
	"github.com/steamnick/nick-batcher/internal/roster"
	"github.com/steamnick/nick-batcher/internal/steam"
	"github.com/steamnick/nick-batcher/internal/ui"
	"github.com/steamnick/nick-batcher/internal/workflow"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.steamnick.nick-batcher"
	AppName = "Nick Batcher"
)

func main() {
	// Log version information
	fmt.Printf("Nick Batcher v%s starting...\n", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	rst := roster.Load(settings)

	client := steam.NewClient(settings.GetBaseURL(), nil, ui.CredentialsFor(settings))
	svc := workflow.NewService(
		client,
		settings.GetApplyDelay(),
		settings.GetCleanupDelay(),
		settings.GetRetryDelay(),
	)

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, settings, rst, client, svc)
	myWindow.SetContent(rootUI.Content())

	// Show and run
	myWindow.ShowAndRun()
}
