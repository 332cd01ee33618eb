package gekkofx

import "testing"

type MockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
}

func TestAppBuilder_Build_WithModules(t *testing.T) {
	builder := NewAppBuilder()
	module := &MockModule{}
	builder.UseModule(module)

	app := builder.Build()

	if app == nil {
		t.Fatalf("Expected an app")
	}
	if !module.installed {
		t.Errorf("Expected Install to be called on the module, but it was not")
	}
}

func TestAppBuilder_Build_InstallOrder(t *testing.T) {
	var order []string
	module1 := &MockModule{order: &order, name: "first"}
	module2 := &MockModule{order: &order, name: "second"}

	NewAppBuilder().UseModule(module1).UseModule(module2).Build()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected modules installed in order [first second], got %v", order)
	}
}
