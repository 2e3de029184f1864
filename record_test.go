// File: specify/record_test.go
package specify_test

import (
	"testing"
	"time"

	"github.com/Qqwy/specify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadRecord(t *testing.T) *specify.Record {
	t.Helper()

	specify.RegisterAtoms("info")
	s := specify.New("test.record").
		Field("name", specify.Named("string")).
		Field("port", specify.Named("integer")).
		Field("ratio", specify.Named("float")).
		Field("debug", specify.Named("boolean")).
		Field("level", specify.Named("atom")).
		Field("timeout", specify.Named("timeout")).
		Field("tags", specify.List(specify.Named("string"))).
		MustBuild()

	rec, err := specify.Load(s, specify.LoadOptions{
		Values: map[string]any{
			"name":    "svc",
			"port":    "8080",
			"ratio":   "0.75",
			"debug":   "true",
			"level":   "info",
			"timeout": 1500,
			"tags":    `["a", "b"]`,
		},
	})
	require.NoError(t, err)
	return rec
}

func TestRecordGetters(t *testing.T) {
	rec := loadRecord(t)

	t.Run("TypedAccess", func(t *testing.T) {
		name, err := rec.String("name")
		require.NoError(t, err)
		assert.Equal(t, "svc", name)

		port, err := rec.Int64("port")
		require.NoError(t, err)
		assert.Equal(t, int64(8080), port)

		ratio, err := rec.Float64("ratio")
		require.NoError(t, err)
		assert.Equal(t, 0.75, ratio)

		debug, err := rec.Bool("debug")
		require.NoError(t, err)
		assert.True(t, debug)

		timeout, err := rec.Duration("timeout")
		require.NoError(t, err)
		assert.Equal(t, 1500*time.Millisecond, timeout)
	})

	t.Run("ParsedTypesAreFinal", func(t *testing.T) {
		// The record stores parsed values, not the raw text.
		port, ok := rec.Get("port")
		require.True(t, ok)
		assert.Equal(t, int64(8080), port)

		level, _ := rec.Get("level")
		assert.Equal(t, specify.Atom("info"), level)

		tags, _ := rec.Get("tags")
		assert.Equal(t, []any{"a", "b"}, tags)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, ok := rec.Get("nope")
		assert.False(t, ok)

		_, err := rec.String("nope")
		assert.Error(t, err)
	})

	t.Run("CrossTypeConversions", func(t *testing.T) {
		portText, err := rec.String("port")
		require.NoError(t, err)
		assert.Equal(t, "8080", portText)

		ratioText, err := rec.String("ratio")
		require.NoError(t, err)
		assert.Equal(t, "0.75", ratioText)

		_, err = rec.Int64("name")
		assert.Error(t, err)
	})
}

func TestRecordScan(t *testing.T) {
	type target struct {
		Name    string        `config:"name"`
		Port    int           `config:"port"`
		Ratio   float64       `config:"ratio"`
		Debug   bool          `config:"debug"`
		Level   string        `config:"level"`
		Timeout time.Duration `config:"timeout"`
		Tags    []string      `config:"tags"`
	}

	rec := loadRecord(t)

	t.Run("StructTarget", func(t *testing.T) {
		var got target
		require.NoError(t, rec.Scan(&got))

		assert.Equal(t, "svc", got.Name)
		assert.Equal(t, 8080, got.Port)
		assert.Equal(t, 0.75, got.Ratio)
		assert.True(t, got.Debug)
		assert.Equal(t, "info", got.Level)
		assert.Equal(t, []string{"a", "b"}, got.Tags)
	})

	t.Run("NonPointerTarget", func(t *testing.T) {
		var got target
		assert.Error(t, rec.Scan(got))
	})

	t.Run("ExplainRecordRefusesScan", func(t *testing.T) {
		s := specify.New("test.scan_explain").
			Field("a", specify.Named("integer"), specify.Default(1)).
			MustBuild()

		explained, err := specify.Load(s, specify.LoadOptions{Explain: true})
		require.NoError(t, err)

		var got map[string]any
		assert.Error(t, explained.Scan(&got))
	})
}
