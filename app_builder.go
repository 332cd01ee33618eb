package gekkofx

type AppBuilder struct {
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

// Build creates the app and installs the modules in the order they were added.
func (b *AppBuilder) Build() *App {
	return NewApp().UseModules(b.modules...)
}
