package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	relations := &fakeFeature{name: "relations", enabled: true}
	disabled := &fakeFeature{name: "integrity", enabled: false}

	mgr := NewManager(nil)
	mgr.Register(relations)
	mgr.Register(disabled)

	assert.NoError(t, mgr.LoadAll(fiber.New()))
	assert.True(t, relations.loaded)
	assert.False(t, disabled.loaded)
	assert.Len(t, mgr.Features(), 2)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	failing := &fakeFeature{name: "relations", enabled: true, err: errors.New("boom")}
	next := &fakeFeature{name: "integrity", enabled: true}

	mgr := NewManager(nil)
	mgr.Register(failing)
	mgr.Register(next)

	err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "failed to load feature relations: boom")
	assert.False(t, next.loaded)
}
