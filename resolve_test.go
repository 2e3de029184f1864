// File: specify/resolve_test.go
package specify

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingProvider always reports the configured error.
type failingProvider struct {
	err error
}

func (p failingProvider) Load(s *Schema) (map[string]any, error) {
	return nil, p.err
}

func personSchema(t *testing.T) *Schema {
	t.Helper()
	return New("test.person").
		Field("name", Named("string"), Default("X")).
		Field("age", Named("integer")).
		MustBuild()
}

func TestLoadRoundTrip(t *testing.T) {
	s := personSchema(t)

	t.Run("ExplicitValueAndDefault", func(t *testing.T) {
		rec, err := Load(s, LoadOptions{Values: map[string]any{"age": 42}})
		require.NoError(t, err)

		name, _ := rec.Get("name")
		age, _ := rec.Get("age")
		assert.Equal(t, "X", name)
		assert.Equal(t, int64(42), age)
		assert.Equal(t, "test.person", rec.Schema())
	})

	t.Run("MissingRequiredField", func(t *testing.T) {
		_, err := Load(s, LoadOptions{})
		require.Error(t, err)

		var missing *MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"age"}, missing.Fields)
		assert.Equal(t, "test.person", missing.Schema)
	})

	t.Run("MissingFieldsAreBatched", func(t *testing.T) {
		multi := New("test.multi").
			Field("a", Named("integer")).
			Field("b", Named("integer")).
			Field("c", Named("integer"), Default(0)).
			MustBuild()

		_, err := Load(multi, LoadOptions{})
		var missing *MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"a", "b"}, missing.Fields)
	})
}

func TestSourcePrecedence(t *testing.T) {
	s := personSchema(t)

	t.Run("LaterSourceWins", func(t *testing.T) {
		rec, err := Load(s, LoadOptions{
			Sources: []Provider{
				Values{"age": 1},
				Values{"age": 2},
			},
		})
		require.NoError(t, err)

		age, _ := rec.Get("age")
		assert.Equal(t, int64(2), age)
	})

	t.Run("ExplicitValuesBeatAllSources", func(t *testing.T) {
		rec, err := Load(s, LoadOptions{
			Sources: []Provider{
				Values{"age": 1},
				Values{"age": 2},
			},
			Values: map[string]any{"age": 3},
		})
		require.NoError(t, err)

		age, _ := rec.Get("age")
		assert.Equal(t, int64(3), age)
	})

	t.Run("SourceBeatsDefault", func(t *testing.T) {
		rec, err := Load(s, LoadOptions{
			Sources: []Provider{Values{"name": "from-source", "age": 1}},
		})
		require.NoError(t, err)

		name, _ := rec.Get("name")
		assert.Equal(t, "from-source", name)
	})

	t.Run("ScopeSitsBetweenSourcesAndExplicit", func(t *testing.T) {
		scope := NewScope()
		scope.Set("test.person", "age", 7)

		rec, err := Load(s, LoadOptions{
			Sources: []Provider{Values{"age": 1}},
			Scope:   scope,
		})
		require.NoError(t, err)
		age, _ := rec.Get("age")
		assert.Equal(t, int64(7), age)

		rec, err = Load(s, LoadOptions{
			Sources: []Provider{Values{"age": 1}},
			Scope:   scope,
			Values:  map[string]any{"age": 9},
		})
		require.NoError(t, err)
		age, _ = rec.Get("age")
		assert.Equal(t, int64(9), age)
	})
}

func TestExplicitValueValidation(t *testing.T) {
	s := personSchema(t)

	// A provider that fails the test if it is ever queried: explicit
	// value validation must happen before any source I/O.
	var queried bool
	recording := providerFunc(func(*Schema) (map[string]any, error) {
		queried = true
		return map[string]any{}, nil
	})

	_, err := Load(s, LoadOptions{
		Sources: []Provider{recording},
		Values:  map[string]any{"unknown_field": 1, "age": 2},
	})
	require.Error(t, err)

	var explicitErr *ExplicitValueError
	require.ErrorAs(t, err, &explicitErr)
	assert.Equal(t, []string{"unknown_field"}, explicitErr.Fields)
	assert.False(t, queried)
}

// providerFunc adapts a function to the Provider interface.
type providerFunc func(*Schema) (map[string]any, error)

func (f providerFunc) Load(s *Schema) (map[string]any, error) { return f(s) }

func TestUnloadableSourceTolerance(t *testing.T) {
	s := personSchema(t)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("NotFoundSkippedWhenOthersSupply", func(t *testing.T) {
		rec, err := Load(s, LoadOptions{
			Sources: []Provider{
				failingProvider{err: ErrSourceNotFound},
				Values{"age": 5},
			},
			Logger: quiet,
		})
		require.NoError(t, err)

		age, _ := rec.Get("age")
		assert.Equal(t, int64(5), age)
	})

	t.Run("MalformedSkipped", func(t *testing.T) {
		rec, err := Load(s, LoadOptions{
			Sources: []Provider{
				failingProvider{err: fmt.Errorf("garbage content: %w", ErrSourceMalformed)},
				Values{"age": 5},
			},
			Logger: quiet,
		})
		require.NoError(t, err)

		age, _ := rec.Get("age")
		assert.Equal(t, int64(5), age)
	})

	t.Run("NotFoundOnOnlySupplierMeansMissing", func(t *testing.T) {
		_, err := Load(s, LoadOptions{
			Sources: []Provider{failingProvider{err: ErrSourceNotFound}},
			Logger:  quiet,
		})

		var missing *MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"age"}, missing.Fields)
	})
}

func TestParseFailures(t *testing.T) {
	s := personSchema(t)

	t.Run("FirstParseFailureAborts", func(t *testing.T) {
		_, err := Load(s, LoadOptions{Values: map[string]any{"age": "not-a-number"}})
		require.Error(t, err)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "age", parseErr.Field)
		assert.Equal(t, "test.person", parseErr.Schema)
		assert.Equal(t, "not-a-number", parseErr.Raw)
		assert.Contains(t, err.Error(), "not-a-number")
	})

	t.Run("OnlyWinnerIsParsed", func(t *testing.T) {
		// A garbage candidate shadowed by a higher-precedence one must
		// not be touched.
		rec, err := Load(s, LoadOptions{
			Sources: []Provider{
				Values{"age": "garbage"},
				Values{"age": 30},
			},
		})
		require.NoError(t, err)

		age, _ := rec.Get("age")
		assert.Equal(t, int64(30), age)
	})

	t.Run("PanickingParserIsContractError", func(t *testing.T) {
		bad := New("test.bad").
			Field("x", Simple(func(raw any) (any, error) { panic("boom") })).
			MustBuild()

		_, err := Load(bad, LoadOptions{Values: map[string]any{"x": 1}})
		require.Error(t, err)

		var contractErr *ParserContractError
		require.ErrorAs(t, err, &contractErr)
		assert.Equal(t, "x", contractErr.Field)
		assert.Equal(t, "boom", contractErr.Panic)
	})
}

func TestErrorWrapping(t *testing.T) {
	s := personSchema(t)
	sentinel := errors.New("app-specific config failure")

	t.Run("MissingFieldsErrorFunc", func(t *testing.T) {
		_, err := Load(s, LoadOptions{
			MissingFieldsErrorFunc: func(err error) error {
				return fmt.Errorf("%w: %v", sentinel, err)
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("ParsingErrorFunc", func(t *testing.T) {
		_, err := Load(s, LoadOptions{
			Values: map[string]any{"age": "bad"},
			ParsingErrorFunc: func(err error) error {
				return fmt.Errorf("%w: %v", sentinel, err)
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("ContractErrorsAreNeverWrapped", func(t *testing.T) {
		bad := New("test.bad").
			Field("x", Simple(func(raw any) (any, error) { panic("boom") })).
			MustBuild()

		_, err := Load(bad, LoadOptions{
			Values:           map[string]any{"x": 1},
			ParsingErrorFunc: func(err error) error { return sentinel },
		})
		var contractErr *ParserContractError
		assert.ErrorAs(t, err, &contractErr)
	})
}

func TestExplainMode(t *testing.T) {
	s := personSchema(t)

	t.Run("ReturnsAllCandidatesInPrecedenceOrder", func(t *testing.T) {
		candidates, err := Explain(s, LoadOptions{
			Sources: []Provider{
				Values{"name": "a", "age": 1},
				Values{"age": 2},
			},
			Values: map[string]any{"age": 3},
		})
		require.NoError(t, err)

		assert.Equal(t, []any{"X", "a"}, candidates["name"])
		assert.Equal(t, []any{1, 2, 3}, candidates["age"])
	})

	t.Run("MissingRequiredFieldIsEmptyNotError", func(t *testing.T) {
		candidates, err := Explain(s, LoadOptions{})
		require.NoError(t, err)

		assert.Equal(t, []any{"X"}, candidates["name"])
		assert.Empty(t, candidates["age"])
	})

	t.Run("NothingIsParsed", func(t *testing.T) {
		candidates, err := Explain(s, LoadOptions{
			Values: map[string]any{"age": "definitely-not-an-integer"},
		})
		require.NoError(t, err)
		assert.Equal(t, []any{"definitely-not-an-integer"}, candidates["age"])
	})

	t.Run("ExplainRecordRefusesGet", func(t *testing.T) {
		rec, err := Load(s, LoadOptions{Explain: true, Values: map[string]any{"age": 1}})
		require.NoError(t, err)
		assert.True(t, rec.Explained())

		_, ok := rec.Get("age")
		assert.False(t, ok)

		c, ok := rec.Candidates("age")
		require.True(t, ok)
		assert.Equal(t, []any{1}, c)
	})
}

func TestConcurrentLoads(t *testing.T) {
	s := personSchema(t)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			rec, err := Load(s, LoadOptions{Values: map[string]any{"age": n}})
			assert.NoError(t, err)

			age, _ := rec.Get("age")
			assert.Equal(t, int64(n), age)
		}(i)
	}
	wg.Wait()
}
