// Package app 提供玻璃按钮画廊的 Ebitengine 宿主
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/decker502/glassfx/internal/logging"
	"github.com/decker502/glassfx/pkg/config"
	"github.com/decker502/glassfx/pkg/fx"
	"github.com/decker502/glassfx/pkg/game"
	"github.com/decker502/glassfx/pkg/render"
	"github.com/decker502/glassfx/pkg/telemetry"
	"github.com/decker502/glassfx/pkg/utils"
)

// 默认资源路径与存储名
const (
	DefaultFXConfigPath = "data/config/fx.yaml"
	DefaultGalleryPath  = "data/config/gallery.yaml"
	StoreName           = "glassfx"

	perfWindow      = 600 // 统计窗口（tick 数）
	overlayInterval = 30  // 叠加层文本刷新间隔（帧）
)

var backgroundColor = color.RGBA{R: 18, G: 18, B: 24, A: 255}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// LogLevel 日志级别（debug/info/warn/error），仅 Verbose 时生效，空为 debug
	LogLevel string
	// LogFile 日志输出文件，空为标准错误
	LogFile string
	// FXConfigPath 特效调参文件，空为默认路径
	FXConfigPath string
	// GalleryPath 画廊布局文件，空为默认路径
	GalleryPath string
	// PerfOut 帧统计 CSV 输出目录，空为不输出
	PerfOut string
	// Fullscreen 启动时全屏（覆盖已保存的设置）
	Fullscreen bool
	// Seed 随机种子，0 为使用当前时间
	Seed int64
}

// App 是画廊应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	log         *zap.SugaredLogger
	fxCfg       *config.FXConfig
	gallery     *config.GalleryConfig
	galleryPath string
	seed        int64
	settings    *game.SettingsManager
	perf        *telemetry.PerfCollector
	out         *telemetry.OutputManager

	clock   fx.Clock
	sched   *fx.Scheduler
	reg     *Registry
	scroll  *Scroller
	router  *Router
	tracker utils.PointerTracker
	face    *text.GoTextFace
	keys    []ebiten.Key

	viewW, viewH, dpr float64
	contentH          float64
	layoutDirty       bool

	overlayText  string
	overlayFrame int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化画廊应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 调参文件、画廊布局或存储不可用时记录警告并使用默认值。
func NewApp(cfg Config) (*App, error) {
	log := logging.Nop()
	if cfg.Verbose {
		level := cfg.LogLevel
		if level == "" {
			level = "debug"
		}
		l, err := logging.New(logging.Config{Level: level, File: cfg.LogFile})
		if err != nil {
			return nil, fmt.Errorf("日志初始化失败: %w", err)
		}
		log = l
	}
	log = log.Named("app")

	fxPath := cfg.FXConfigPath
	if fxPath == "" {
		fxPath = DefaultFXConfigPath
	}
	fxCfg, err := config.Load(fxPath)
	if err != nil {
		if errors.Is(err, config.ErrInvalidConfig) {
			return nil, fmt.Errorf("特效配置无效: %w", err)
		}
		log.Warnf("[App] %v (using defaults)", err)
		fxCfg = config.Default()
	}

	galleryPath := cfg.GalleryPath
	if galleryPath == "" {
		galleryPath = DefaultGalleryPath
	}
	gallery, err := config.LoadGallery(galleryPath)
	if err != nil {
		log.Warnf("[App] %v (using built-in gallery)", err)
		gallery = config.DefaultGallery()
	}

	// 存储不可用时设置仅保存在内存中
	var store *gdata.Manager
	if err := utils.EnsureStorageDir(); err != nil {
		log.Warnf("[App] storage directory unavailable: %v", err)
	} else if s, err := game.OpenStore(StoreName); err != nil {
		log.Warnf("[App] %v", err)
	} else {
		store = s
		if p := utils.StoragePath(); p != "" {
			log.Infof("[App] storage at %s", p)
		}
	}
	settings := game.NewSettingsManager(store, log)

	out, err := telemetry.NewOutputManager(cfg.PerfOut)
	if err != nil {
		return nil, fmt.Errorf("帧统计输出初始化失败: %w", err)
	}

	face, err := newLabelFace()
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	clock := fx.SystemClock{}
	a := &App{
		log:         log,
		fxCfg:       fxCfg,
		gallery:     gallery,
		galleryPath: galleryPath,
		settings:    settings,
		perf:        telemetry.NewPerfCollector(perfWindow, out),
		out:         out,
		clock:       clock,
		sched:       fx.NewScheduler(clock, log),
		reg:         NewRegistry(),
		scroll:      NewScroller(),
		face:        face,
		dpr:         1,
		viewW:       config.GalleryWindowWidth,
		viewH:       config.GalleryWindowHeight,
		layoutDirty: true,
	}
	a.router = NewRouter(a.reg, a.scroll, clock, log)

	a.seed = cfg.Seed
	if a.seed == 0 {
		a.seed = time.Now().UnixNano()
	}
	a.Bootstrap(a.seed)
	a.sched.Start()

	if cfg.Fullscreen || settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	log.Infof("[App] %d buttons, transitions=%v, persistent settings=%v", a.reg.Len(), a.transitions(), settings.Persistent())
	return a, nil
}

// Bootstrap 为画廊中的每个按钮创建特效实例
// 可重复调用，已注册的按钮不会重复创建，仅更新标签与尺寸
func (a *App) Bootstrap(seed int64) {
	for i, bc := range a.gallery.Buttons {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		b, created := a.reg.Ensure(bc, func(bc config.ButtonConfig) *fx.Instance {
			return fx.New(fx.Options{
				ID:          bc.ID,
				Palette:     config.ParsePalette(bc.Palette),
				Variant:     config.ParseVariant(bc.Variant),
				Config:      a.fxCfg,
				Transitions: a.transitions(),
				Scheduler:   a.sched,
				Clock:       a.clock,
				Rand:        rng,
				Logger:      a.log,
				Observer:    a.perf,
			})
		})
		if created {
			a.layoutDirty = true
		} else if b.Config != bc {
			b.Config = bc
			b.body.dispose()
			b.body = nil
			a.layoutDirty = true
		}
	}
}

// ReloadGallery 重新读取画廊布局并与注册表同步
//
// 不再出现或主题、变体改变的按钮先从路由器中清除再关闭实例，
// 新按钮按需创建。读取失败时保留当前画廊。
func (a *App) ReloadGallery() error {
	g, err := config.LoadGallery(a.galleryPath)
	if err != nil {
		a.log.Warnf("[App] reload: %v (keeping current gallery)", err)
		return err
	}
	a.gallery = g
	removed := a.reg.Prune(g.Buttons, a.router.Forget)
	if removed > 0 {
		a.layoutDirty = true
	}
	a.Bootstrap(a.seed)

	t := a.transitions()
	for _, b := range a.reg.Buttons() {
		b.FX.SetTransitions(t)
	}
	a.log.Infof("[App] gallery reloaded: %d buttons, %d removed", a.reg.Len(), removed)
	return nil
}

// transitions 画廊允许且用户未开启减少动态效果时启用过渡
func (a *App) transitions() bool {
	return a.gallery.TransitionsEnabled() && !a.settings.GetSettings().ReducedMotion
}

// relayout 重新排布按钮并同步每个实例的尺寸与 DPR
func (a *App) relayout() {
	a.contentH = LayoutGallery(a.gallery, a.reg.Buttons(), a.viewW)
	for _, b := range a.reg.Buttons() {
		b.FX.Resize(b.Rect.W, b.Rect.H, a.dpr)
	}
	a.scroll.SetBounds(a.contentH, a.viewH)
	a.router.SetViewHeight(a.viewH)
	a.layoutDirty = false
	a.log.Debugf("[App] layout %.0fx%.0f dpr %.2f, content height %.0f", a.viewW, a.viewH, a.dpr, a.contentH)
}

// Update 更新输入与特效
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.updateWindow()
	if a.layoutDirty {
		a.relayout()
	}

	a.router.Pointer(a.tracker.Advance(utils.PollPointer(1 / a.dpr)))

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, k := range a.keys {
		if name, ok := DOMKey(k); ok {
			a.router.Key(name, shift)
		}
	}
	_, wy := ebiten.Wheel()
	a.router.Wheel(wy)

	now := a.clock.Now()
	for _, b := range a.reg.Buttons() {
		b.FX.Settle(now)
	}
	a.sched.Frame()
	return nil
}

// updateWindow 处理全屏、叠加层与减少动态效果快捷键
func (a *App) updateWindow() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GalleryWindowWidth, config.GalleryWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	changed := false
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		full := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(full)
		if !full {
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		}
		a.settings.SetFullscreen(full)
		changed = true
	}
	// F3 切换统计叠加层
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.settings.ToggleOverlay()
		changed = true
	}
	// F5 重新加载画廊布局
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		_ = a.ReloadGallery()
	}
	// F4 切换减少动态效果
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		a.SetReducedMotion(!a.settings.GetSettings().ReducedMotion)
		changed = true
	}
	if changed {
		if err := a.settings.Save(); err != nil {
			a.log.Warnf("[App] %v", err)
		}
	}
}

// SetReducedMotion 切换减少动态效果并同步到所有实例
func (a *App) SetReducedMotion(on bool) {
	a.settings.SetReducedMotion(on)
	t := a.transitions()
	for _, b := range a.reg.Buttons() {
		b.FX.SetTransitions(t)
	}
	a.log.Infof("[App] reduced motion %v", on)
}

// Draw 绘制画廊
// 每帧调用一次，屏幕为物理像素
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	now := a.clock.Now()
	off := a.scroll.Offset(now)

	if a.face != nil && a.gallery.Title != "" {
		op := &text.DrawOptions{}
		op.GeoM.Translate(a.gallery.Padding, a.gallery.Padding-off)
		op.GeoM.Scale(a.dpr, a.dpr)
		op.ColorScale.ScaleWithColor(labelColor)
		text.Draw(screen, a.gallery.Title, a.face, op)
	}

	for _, b := range a.reg.Buttons() {
		if b.Rect.Y+b.Rect.H-off < -b.Rect.H || b.Rect.Y-off > a.viewH+b.Rect.H {
			continue
		}
		drawButton(screen, b, b.FX.ElementTransform(now), b.FX.Glow(now), off, a.dpr, a.face)
	}
	if f := a.router.Focused(); f != nil {
		drawFocusRing(screen, f.Rect, off, a.dpr)
	}

	if a.settings.GetSettings().ShowOverlay {
		a.drawOverlay(screen)
	}
}

func (a *App) drawOverlay(screen *ebiten.Image) {
	if a.overlayFrame%overlayInterval == 0 {
		st := a.perf.Stats()
		particles := 0
		for _, b := range a.reg.Buttons() {
			particles += b.FX.Particles().Len()
		}
		a.overlayText = fmt.Sprintf(
			"TPS %.0f  FPS %.0f\nparticles %d\ntick p50 %.0fus p95 %.0fus\nrender errors %d\nF3 overlay  F4 reduced motion (%v)  F5 reload  F11 fullscreen",
			ebiten.ActualTPS(), ebiten.ActualFPS(), particles,
			st.TickUs.P50, st.TickUs.P95, st.RenderErrors,
			a.settings.GetSettings().ReducedMotion,
		)
	}
	a.overlayFrame++
	ebitenutil.DebugPrintAt(screen, a.overlayText, 8, int(math.Round(a.viewH*a.dpr))-80)
}

// Layout 返回物理像素尺寸，逻辑尺寸与 DPR 变化时标记重新排布
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := 1.0
	if m := ebiten.Monitor(); m != nil {
		dpr = render.NormalizeDPR(m.DeviceScaleFactor())
	}
	w, h := float64(outsideWidth), float64(outsideHeight)
	if dpr != a.dpr || w != a.viewW || h != a.viewH {
		a.dpr, a.viewW, a.viewH = dpr, w, h
		a.layoutDirty = true
	}
	bw, bh := render.BackingSize(w, h, dpr)
	return max(bw, 1), max(bh, 1)
}

// Close 停止调度、释放实例、保存设置并写出帧统计
func (a *App) Close() error {
	a.sched.Stop()
	a.reg.Close()

	var errs []error
	if err := a.settings.Save(); err != nil {
		errs = append(errs, err)
	}
	if a.perf.Total() > 0 {
		if err := a.out.WriteSummary(a.perf.Stats()); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.perf.Err(); err != nil {
		errs = append(errs, err)
	}
	if err := a.out.Close(); err != nil {
		errs = append(errs, err)
	}
	if dir := a.out.Dir(); dir != "" {
		a.log.Infof("[App] frame telemetry written to %s", dir)
	}
	return errors.Join(errs...)
}
