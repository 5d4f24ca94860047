// Command cropdeck provides an interactive image crop editor.
package main

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/cropdeck/cropdeck/internal/config"
	"github.com/cropdeck/cropdeck/internal/ui"
)

func main() {
	imagePath := flag.String("image", "", "Image file or URL to open on startup")
	configPath := flag.String("config", "", "Config file path (default: ~/.config/cropdeck/config.json)")
	flag.Parse()

	path := *imagePath
	if path == "" {
		path = flag.Arg(0)
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("CropDeck"),
			app.Size(unit.Dp(1280), unit.Dp(860)),
		)

		application := ui.NewApp(cfg)
		application.State().SetInvalidate(window.Invalidate)
		if path != "" {
			application.State().LoadImage(path)
		}

		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
