package platform

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/glint/engine/core"
)

var keys = map[glfw.Key]core.Key{
	glfw.KeyEscape: core.KeyEscape,
	glfw.KeySpace:  core.KeySpace,
	glfw.KeyW:      core.KeyW,
	glfw.KeyA:      core.KeyA,
	glfw.KeyS:      core.KeyS,
	glfw.KeyD:      core.KeyD,
	glfw.KeyR:      core.KeyR,
}

var mods = [...]struct {
	from glfw.ModifierKey
	to   core.Mod
}{
	{glfw.ModShift, core.ModShift},
	{glfw.ModControl, core.ModCtrl},
	{glfw.ModAlt, core.ModAlt},
	{glfw.ModSuper, core.ModSuper},
}

// GLFWWindow is a core.Window backed by GLFW with a current OpenGL 3.3 core
// context.
type GLFWWindow struct {
	w    *glfw.Window
	onEv func(core.Event)
}

// NewGLFWWindow must be called on the main thread before any GL call.
func NewGLFWWindow(cfg core.Config, onEvent func(core.Event)) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	win, err := createContext(cfg)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}

	gw := &GLFWWindow{w: win, onEv: onEvent}
	gw.forwardEvents()
	log.Printf("Window: %dx%d %q\n", cfg.Width, cfg.Height, cfg.Title)
	return gw, nil
}

// createContext opens the window, makes its context current and loads GL.
func createContext(cfg core.Config) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True) // macOS
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	interval := 0
	if cfg.VSync {
		interval = 1
	}
	glfw.SwapInterval(interval)

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("load GL functions: %w", err)
	}
	return win, nil
}

func (g *GLFWWindow) forwardEvents() {
	g.w.SetCloseCallback(func(*glfw.Window) { g.emit(core.EventCloseRequested{}) })
	g.w.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		g.emit(core.EventResize{W: w, H: h})
	})
	g.w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		g.emit(core.EventMouseMove{X: x, Y: y})
	})
	g.w.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		g.emit(core.EventScroll{Xoff: xoff, Yoff: yoff})
	})
	g.w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, m glfw.ModifierKey) {
		k, ok := keys[key]
		if !ok || action == glfw.Repeat {
			return
		}
		g.emit(core.EventKey{Key: k, Down: action == glfw.Press, Mods: translateMods(m)})
	})
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) RequestClose()                        { g.w.SetShouldClose(true) }
func (g *GLFWWindow) Size() (int, int)                     { return g.w.GetSize() }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

// Destroy closes the window and shuts GLFW down. Safe to call twice.
func (g *GLFWWindow) Destroy() {
	if g.w == nil {
		return
	}
	g.w.Destroy()
	g.w = nil
	glfw.Terminate()
}

func translateMods(m glfw.ModifierKey) core.Mod {
	out := core.ModNone
	for _, pair := range mods {
		if m&pair.from != 0 {
			out |= pair.to
		}
	}
	return out
}
