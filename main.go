package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/scrolly/internal/api"
	"github.com/ytget/scrolly/internal/compose"
	"github.com/ytget/scrolly/internal/compress"
	"github.com/ytget/scrolly/internal/config"
	"github.com/ytget/scrolly/internal/download"
	"github.com/ytget/scrolly/internal/feed"
	"github.com/ytget/scrolly/internal/session"
	"github.com/ytget/scrolly/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.scrolly"
	AppName = "Scrolly"

	WindowWidth  = 420
	WindowHeight = 760

	HTTPTimeout = 60 * time.Second
)

func main() {
	fmt.Printf("Scrolly v%s starting...\n", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewScrollyTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	baseURL := settings.GetAPIBaseURL()
	httpClient := &http.Client{Timeout: HTTPTimeout}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    baseURL,
		HTTPClient: httpClient,
	})
	if err != nil {
		log.Fatalf("failed to create API client: %v", err)
	}
	log.Printf("Using API server %s", client.BaseURL())

	store := session.NewStore(myApp.Preferences())

	feedSvc := feed.NewService(client, store)
	if cache, err := feed.NewCache(myApp.Storage().RootURI().Path()); err != nil {
		log.Printf("feed snapshot disabled: %v", err)
	} else {
		feedSvc.SetCache(cache)
	}

	imageSvc := download.NewService(baseURL, httpClient)
	compressSvc := compress.NewService("")

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, ui.Services{
		Settings: settings,
		Session:  store,
		API:      client,
		Feed:     feedSvc,
		Composer: compose.NewOrchestrator(store, client),
		Images:   imageSvc,
		Shrinker: compressSvc,
	})

	myWindow.ShowAndRun()
}
