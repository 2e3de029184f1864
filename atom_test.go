// File: specify/atom_test.go
package specify_test

import (
	"sync"
	"testing"

	"github.com/Qqwy/specify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomRegistry(t *testing.T) {
	t.Run("RegisterAndLookup", func(t *testing.T) {
		specify.RegisterAtoms("alpha_mode", "beta_mode")

		assert.True(t, specify.AtomExists("alpha_mode"))
		a, ok := specify.LookupAtom("beta_mode")
		require.True(t, ok)
		assert.Equal(t, specify.Atom("beta_mode"), a)

		_, ok = specify.LookupAtom("gamma_mode_unregistered")
		assert.False(t, ok)
	})

	t.Run("WellKnownAtomsPreRegistered", func(t *testing.T) {
		assert.True(t, specify.AtomExists("infinity"))
		assert.True(t, specify.AtomExists("true"))
		assert.True(t, specify.AtomExists("false"))
	})

	t.Run("ConcurrentIntern", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				specify.Intern("concurrently_interned")
			}()
		}
		wg.Wait()
		assert.True(t, specify.AtomExists("concurrently_interned"))
	})
}

func TestScopeProvider(t *testing.T) {
	s := specify.New("test.scope").
		Field("age", specify.Named("integer")).
		MustBuild()

	t.Run("SetAndLoad", func(t *testing.T) {
		scope := specify.NewScope()
		scope.Set("test.scope", "age", 5)

		found, err := scope.Load(s)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"age": 5}, found)
	})

	t.Run("SetAll", func(t *testing.T) {
		scope := specify.NewScope()
		scope.SetAll("test.scope", map[string]any{"age": 1})
		scope.SetAll("test.scope", map[string]any{"age": 2})

		found, err := scope.Load(s)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"age": 2}, found)
	})

	t.Run("UnknownSchemaIsNotFound", func(t *testing.T) {
		scope := specify.NewScope()
		_, err := scope.Load(s)
		assert.ErrorIs(t, err, specify.ErrSourceNotFound)
	})

	t.Run("DeleteRemovesEntries", func(t *testing.T) {
		scope := specify.NewScope()
		scope.Set("test.scope", "age", 5)
		scope.Delete("test.scope")

		_, err := scope.Load(s)
		assert.ErrorIs(t, err, specify.ErrSourceNotFound)
	})

	t.Run("LoadReturnsACopy", func(t *testing.T) {
		scope := specify.NewScope()
		scope.Set("test.scope", "age", 5)

		found, err := scope.Load(s)
		require.NoError(t, err)
		found["age"] = 99

		again, err := scope.Load(s)
		require.NoError(t, err)
		assert.Equal(t, 5, again["age"])
	})
}

func TestAppSettingsProvider(t *testing.T) {
	s := specify.New("test.appsettings").
		Field("age", specify.Named("integer")).
		MustBuild()

	t.Run("SetAndLoad", func(t *testing.T) {
		specify.SetAppSetting("test.appsettings", "age", 30)
		t.Cleanup(func() { specify.ClearAppSettings("test.appsettings") })

		found, err := specify.AppSettings().Load(s)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"age": 30}, found)
	})

	t.Run("UnknownSchemaIsNotFound", func(t *testing.T) {
		_, err := specify.AppSettings().Load(s)
		assert.ErrorIs(t, err, specify.ErrSourceNotFound)
	})
}
