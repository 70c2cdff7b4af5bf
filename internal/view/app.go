// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/rs/zerolog"

	"github.com/spyglass/spyglass/internal/config"
	"github.com/spyglass/spyglass/internal/config/data"
	"github.com/spyglass/spyglass/internal/i18n"
	"github.com/spyglass/spyglass/internal/model"
	"github.com/spyglass/spyglass/internal/render"
	"github.com/spyglass/spyglass/internal/resource"
	"github.com/spyglass/spyglass/internal/table"
	"github.com/spyglass/spyglass/internal/ui"
)

const sidebarWidth = 28

// SessionFunc returns the table source of a kube context.
type SessionFunc func(kubeContext string) model.Source

// ContextLister lists the kube contexts known to the backend.
type ContextLister interface {
	GetContexts(ctx context.Context) ([]string, error)
}

// Deps holds the collaborators of the application.
type Deps struct {
	Config     *config.Config
	Resolver   model.Resolver
	Aliases    *config.Aliases
	Translator *i18n.Translator
	Library    *render.Library
	Sessions   SessionFunc
	Contexts   ContextLister
	States     *data.Dir
	Metrics    model.Metrics
	Taxonomy   resource.Taxonomy
	Logger     zerolog.Logger
}

// App represents the main application container.
type App struct {
	*tview.Application

	version string
	deps    Deps
	skin    ui.Skin
	Main    *tview.Pages
	Content *ui.Pages
	command *Command
	sidebar *ui.Sidebar
	cmdBar  *ui.CmdBar
	menu    *ui.Menu
	crumbs  *ui.Crumbs
	flash   *Flash
	help    *Help

	ctx     context.Context
	cancel  context.CancelFunc
	mx      sync.RWMutex
	state   *data.ContextState
	source  model.Source
	running bool
}

// NewApp creates a new application instance.
func NewApp(deps Deps, version string) *App {
	if deps.Taxonomy == nil {
		deps.Taxonomy = resource.DefaultTaxonomy
	}
	if deps.Aliases == nil {
		deps.Aliases = config.NewAliases(deps.Taxonomy)
	}
	if deps.Translator == nil {
		deps.Translator = i18n.New(i18n.FallbackLanguage, nil)
	}
	if deps.Library == nil {
		deps.Library = render.NewLibrary(deps.Translator.Translate)
	}
	if deps.Config == nil {
		deps.Config = config.NewConfig()
	}
	if deps.Resolver == nil {
		deps.Resolver = table.Builtin(deps.Library)
	}

	skin := ui.NewSkin(deps.Config.Spyglass.UI.Theme)
	a := App{
		Application: tview.NewApplication(),
		version:     version,
		deps:        deps,
		skin:        skin,
		Main:        tview.NewPages(),
		Content:     ui.NewPages(),
		sidebar:     ui.NewSidebar(deps.Taxonomy, deps.Translator, skin),
		cmdBar:      ui.NewCmdBar(skin, ui.NewCompleter(deps.Taxonomy)),
		menu:        ui.NewMenu(skin),
		crumbs:      ui.NewCrumbs(skin),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.flash = NewFlash(skin, a.QueueUpdateDraw)
	a.help = NewHelp(skin, deps.Aliases)
	a.help.SetCloseFn(func() { a.Content.Pop() })
	a.command = NewCommand(&a)

	return &a
}

// Init loads the saved context state and builds the layout.
func (a *App) Init() error {
	cfg := a.deps.Config.Spyglass
	state := data.NewContextState(cfg.KubeContext)
	if a.deps.States != nil {
		s, err := a.deps.States.Load(cfg.KubeContext)
		if err != nil {
			a.deps.Logger.Warn().Err(err).Msg("Unable to load context state")
		} else {
			state = s
		}
	}
	if cfg.Namespace != "" {
		state.Namespace = cfg.Namespace
	}
	a.mx.Lock()
	a.state = state
	a.source = a.session(state.Context)
	src := a.source
	a.mx.Unlock()
	go a.loadCompletions(src)

	a.Content.AddListener(a.crumbs)
	a.Content.AddListener(a.menu)
	a.Content.AddListener(a)

	a.command.Register(a.cmdBar.Completer())
	a.cmdBar.SetHandlers(ui.CmdBarHandlers{
		Command: func(cmd string) {
			if err := a.command.Run(cmd); err != nil {
				a.flash.Err(err)
			}
		},
		Filter: a.applyFilter,
		Active: func(active bool) {
			if active {
				a.SetFocus(a.cmdBar)
				return
			}
			a.SetFocus(a.Content)
		},
	})

	a.sidebar.SetSelectFn(func(k resource.Key) {
		if err := a.command.Show(k); err != nil {
			a.flash.Err(err)
		}
	})

	a.Application.SetInputCapture(a.keyboard)
	a.Main.AddPage("main", a.layout(), true, true)
	a.SetRoot(a.Main, true)

	return nil
}

// Run shows the last active view and starts the event loop.
func (a *App) Run() error {
	a.mx.Lock()
	a.running = true
	active := a.state.Active
	a.mx.Unlock()

	if err := a.command.Run(active); err != nil {
		a.flash.Errf("Unable to restore view %s: %v", active, err)
		if err := a.command.Show(resource.Pods); err != nil {
			return err
		}
	}

	return a.Application.Run()
}

// Stop saves the context state, stops every view and the event loop.
func (a *App) Stop() {
	a.mx.Lock()
	a.running = false
	a.mx.Unlock()

	if err := a.saveState(); err != nil {
		a.deps.Logger.Warn().Err(err).Msg("Unable to save context state")
	}
	a.cancel()
	a.Content.Stack.Clear()
	a.Application.Stop()
}

// IsRunning returns whether the event loop runs.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.running
}

// Flash returns the flash message handler.
func (a *App) Flash() *Flash {
	return a.flash
}

// Skin returns the active skin.
func (a *App) Skin() ui.Skin {
	return a.skin
}

// Context returns the application lifetime context.
func (a *App) Context() context.Context {
	return a.ctx
}

// Namespace returns the active namespace. Empty means all.
func (a *App) Namespace() string {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return a.state.Namespace
}

// KubeContext returns the active kube context.
func (a *App) KubeContext() string {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return a.state.Context
}

// Source returns the table source of the active context.
func (a *App) Source() model.Source {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return a.source
}

// Tables returns the table models of the stacked browsers.
func (a *App) Tables() []*model.Table {
	var tt []*model.Table
	for _, c := range a.Content.Components() {
		if b, ok := c.(*Browser); ok && b.Model() != nil {
			tt = append(tt, b.Model())
		}
	}
	return tt
}

// SwitchNamespace changes the namespace of the current and later views.
func (a *App) SwitchNamespace(ns string) {
	if ns == config.AllNamespaces {
		ns = ""
	}
	a.mx.Lock()
	a.state.Namespace = ns
	a.mx.Unlock()

	if b, ok := a.Content.Current().(*Browser); ok {
		b.SetNamespace(ns)
	}
}

// SwitchContext saves the current context state, loads the state of
// kubeContext and reopens its last view.
func (a *App) SwitchContext(kubeContext string) error {
	if a.deps.Sessions == nil {
		return errors.New("no backend session")
	}
	if err := a.saveState(); err != nil {
		a.deps.Logger.Warn().Err(err).Msg("Unable to save context state")
	}
	state := data.NewContextState(kubeContext)
	if a.deps.States != nil {
		s, err := a.deps.States.Load(kubeContext)
		if err != nil {
			return fmt.Errorf("switch context %s: %w", kubeContext, err)
		}
		state = s
	}
	a.mx.Lock()
	a.state = state
	a.source = a.session(kubeContext)
	src := a.source
	a.mx.Unlock()
	a.deps.Logger.Info().Str("context", kubeContext).Msg("Switched context")
	go a.loadCompletions(src)

	return a.command.Run(state.Active)
}

// Reload refetches the current view, typically after the display rules
// changed.
func (a *App) Reload() {
	if b, ok := a.Content.Current().(*Browser); ok {
		go b.Model().Reload()
	}
}

// QueueUpdateDraw queues a function to be executed on the UI thread.
func (a *App) QueueUpdateDraw(fn func()) {
	if !a.IsRunning() {
		fn()
		return
	}
	go a.Application.QueueUpdateDraw(fn)
}

// StackPushed implements ui.StackListener.
func (*App) StackPushed(ui.Component) {}

// StackPopped closes popped browsers for good.
func (a *App) StackPopped(old, _ ui.Component) {
	if b, ok := old.(*Browser); ok {
		b.Close()
	}
}

// StackTop starts the visible component and records it as the active view.
func (a *App) StackTop(c ui.Component) {
	if a.ctx.Err() != nil {
		return
	}
	c.Start()
	if b, ok := c.(*Browser); ok {
		a.mx.Lock()
		a.state.Active = b.Key().String()
		a.mx.Unlock()
		a.sidebar.Highlight(b.Key())
	}
	a.SetFocus(c)
}

func (a *App) session(kubeContext string) model.Source {
	if a.deps.Sessions == nil {
		return nil
	}
	return a.deps.Sessions(kubeContext)
}

func (a *App) saveState() error {
	if a.deps.States == nil {
		return nil
	}
	a.mx.RLock()
	s := *a.state
	a.mx.RUnlock()

	return a.deps.States.Save(&s)
}

func (a *App) layout() *tview.Flex {
	bottom := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.flash, 1, 0, false).
		AddItem(a.menu, 2, 0, false)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.sidebar, sidebarWidth, 0, false).
		AddItem(a.Content, 0, 1, true)

	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.cmdBar, 3, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(bottom, 4, 0, false)
}

func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if a.cmdBar.IsActive() {
		return evt
	}
	if _, ok := a.Content.Current().(*Help); ok {
		return evt
	}

	switch ui.AsKey(evt) {
	case ui.KeyColon:
		a.cmdBar.Activate(ui.InputCommand)
		return nil
	case ui.KeySlash:
		a.cmdBar.Activate(ui.InputFilter)
		return nil
	case ui.KeyQuestion:
		a.showHelp()
		return nil
	case tcell.KeyTab:
		a.toggleFocus()
		return nil
	case tcell.KeyCtrlC:
		a.Stop()
		return nil
	case tcell.KeyEsc:
		if a.cmdBar.Filter() != "" {
			a.cmdBar.ClearFilter()
			return nil
		}
		if a.Content.Len() > 1 {
			a.Content.Pop()
			return nil
		}
	}

	return evt
}

// loadCompletions fetches the context and namespace names offered as command
// arguments. A failure only costs the completions.
func (a *App) loadCompletions(src model.Source) {
	timeout, err := a.deps.Config.Spyglass.GetAPITimeout()
	if err != nil {
		timeout = config.DefaultAPITimeout
	}
	ctx, cancel := context.WithTimeout(a.ctx, timeout)
	defer cancel()

	comp := a.cmdBar.Completer()
	if a.deps.Contexts != nil {
		cc, err := a.deps.Contexts.GetContexts(ctx)
		if err != nil {
			a.deps.Logger.Debug().Err(err).Msg("Unable to list contexts for completion")
		} else {
			comp.SetArgs(cmdContext, cc)
		}
	}
	if src == nil {
		return
	}
	t, err := src.ListTabular(ctx, resource.Namespaces, "")
	if err != nil {
		a.deps.Logger.Debug().Err(err).Msg("Unable to list namespaces for completion")
		return
	}
	nss := make([]string, 0, len(t.Rows)+1)
	nss = append(nss, config.AllNamespaces)
	for _, r := range t.Rows {
		nss = append(nss, r.Meta.Name)
	}
	comp.SetNamespaces(cmdNamespace, nss)
}

func (a *App) toggleFocus() {
	if a.sidebar.HasFocus() {
		a.SetFocus(a.Content)
		return
	}
	a.SetFocus(a.sidebar)
}

func (a *App) applyFilter(q string) {
	if b, ok := a.Content.Current().(*Browser); ok {
		b.SetFilter(q)
	}
}

func (a *App) showHelp() {
	a.Content.Push(a.help)
}
