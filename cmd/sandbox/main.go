package main

import (
	"log"

	"github.com/hubastard/glint/engine/assets"
	"github.com/hubastard/glint/engine/colors"
	"github.com/hubastard/glint/engine/core"
	"github.com/hubastard/glint/engine/gfx/geom"
	glbackend "github.com/hubastard/glint/engine/gfx/gl"
	"github.com/hubastard/glint/engine/gfx/renderer2d"
	"github.com/hubastard/glint/engine/platform"
	"github.com/hubastard/glint/engine/render"
)

type App struct {
	quad    core.Ref[core.Mesh]
	r2d     *renderer2d.Renderer2D
	proc    *render.Process[render.Step, render.Params]
	scene   *demoScene
	stats   frameStats
	lastErr string
}

func (a *App) OnStart(e *core.Engine) {
	log.Printf("GPU: %s / %s\n", e.Renderer.GPUVendor(), e.Renderer.GPURenderer())

	var err error
	a.quad, err = geom.NewQuad(e.Renderer)
	if err != nil {
		panic(err)
	}
	a.r2d, err = renderer2d.New(e.Renderer, a.quad)
	if err != nil {
		panic(err)
	}

	fs := render.DefaultFragmentShader
	if e.Config.CompositeShader != "" {
		if fs, err = assets.LoadShader(e.Config.CompositeShader); err != nil {
			panic(err)
		}
	}

	w, h := e.Config.TargetSize(e.Window.FramebufferSize())
	a.proc, err = render.New(e.Renderer, a.quad, render.Config[render.Step, render.Params]{
		Steps:          render.Steps(),
		Width:          w,
		Height:         h,
		Format:         core.TextureRGBA8,
		Params:         render.Params{Ambient: e.Config.Ambient},
		FragmentSource: fs,
		Composite:      render.DefaultComposite[render.Step, render.Params],
	})
	if err != nil {
		panic(err)
	}

	a.scene, err = newDemoScene(e.Renderer, a.r2d)
	if err != nil {
		panic(err)
	}
	a.stats.title = e.Config.Title
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	if e.Input.IsKeyDown(core.KeyEscape) {
		e.Window.RequestClose()
	}
	w, h := a.proc.Size()
	if err := a.scene.update(e, float32(dt), w, h); err != nil {
		a.report(err)
	}
}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	a.r2d.ResetStats()
	err := a.proc.Frame(e.Renderer.Screen(), colors.Transparent, func(step render.Step, dst core.Surface) error {
		return renderer2d.DrawAll(dst, step, a.scene.cam, a.scene.items...)
	})
	a.report(err)
	a.stats.frame(e, a.r2d.Stats())
}

// report logs frame errors when they change, not every frame.
func (a *App) report(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg != a.lastErr && msg != "" {
		log.Printf("frame: %s\n", msg)
	}
	a.lastErr = msg
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	switch v := ev.(type) {
	case core.EventResize:
		// Pinned target sizes do not follow the window.
		if e.Config.TargetWidth != 0 && e.Config.TargetHeight != 0 {
			return
		}
		if v.W < 1 || v.H < 1 || a.proc == nil {
			return
		}
		w, h := e.Config.TargetSize(v.W, v.H)
		if err := a.proc.Resize(w, h); err != nil {
			log.Printf("resize: %v\n", err)
		}
	case core.EventKey:
		if v.Down && v.Key == core.KeyR && a.scene != nil {
			a.scene.resetCamera()
		}
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	a.scene.release()
	a.proc.Close()
	a.r2d.Close()
	a.quad.Release()
}

func main() {
	cfg, err := core.LoadConfig("sandbox.toml")
	if err != nil {
		log.Fatal(err)
	}
	app := &App{}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
