// Command glassfx runs the glass button gallery.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose            Enable development logging
//	--log-level <level>  debug, info, warn or error (with --verbose)
//	--config <path>      FX tuning file (default data/config/fx.yaml)
//	--gallery <path>     Gallery layout file (default data/config/gallery.yaml)
//	--perf-out <dir>     Write per-frame telemetry CSV to dir
//	--fullscreen         Start in fullscreen
//
// Controls:
//
//	Mouse / touch     - Hover and click buttons
//	Tab / Shift+Tab   - Move keyboard focus
//	Enter / Space     - Activate the focused button
//	Space / Page keys - Scroll when no button takes the key
//	F3                - Toggle the statistics overlay
//	F4                - Toggle reduced motion
//	F11               - Toggle fullscreen
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/glassfx/pkg/app"
	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/embedded"
)

var (
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	logLevelFlag   = flag.String("log-level", "debug", "Log level when --verbose is set")
	configFlag     = flag.String("config", app.DefaultFXConfigPath, "FX tuning YAML")
	galleryFlag    = flag.String("gallery", app.DefaultGalleryPath, "Gallery layout YAML")
	perfOutFlag    = flag.String("perf-out", "", "Directory for frame telemetry CSV (disabled when empty)")
	fullscreenFlag = flag.Bool("fullscreen", false, "Start in fullscreen")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gallery, err := app.NewApp(app.Config{
		Verbose:      *verboseFlag,
		LogLevel:     *logLevelFlag,
		FXConfigPath: *configFlag,
		GalleryPath:  *galleryFlag,
		PerfOut:      *perfOutFlag,
		Fullscreen:   *fullscreenFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GalleryWindowWidth, config.GalleryWindowHeight)
	ebiten.SetWindowTitle("Glass Buttons")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gallery)
	if err := gallery.Close(); err != nil {
		log.Printf("关闭时出错: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
