package game

// App receives the application lifecycle and frame callbacks of a Runtime. The
// host may install its own App to run code around the property passes.
type App interface {
	OnStart()
	OnShutdown()
	OnBeginFrame()
	OnFrame()
	OnEndFrame()
}

// BaseApp is an App whose callbacks do nothing; embed it to override a subset.
type BaseApp struct{}

func (BaseApp) OnStart()      {}
func (BaseApp) OnShutdown()   {}
func (BaseApp) OnBeginFrame() {}
func (BaseApp) OnFrame()      {}
func (BaseApp) OnEndFrame()   {}
