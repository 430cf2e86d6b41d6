package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"reflect"
	"testing"
)

func TestNoZeroFields(t *testing.T) {
	cfg := Default()

	for _, field := range visit(newVar(*cfg), "Config", false) {
		assert.Fail(t, "zero-value field", field)
	}
}

func TestFill(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		require.Equal(t, Default(), Fill(nil))
	})

	t.Run("empty", func(t *testing.T) {
		require.Equal(t, Default(), Fill(new(Config)))
	})

	t.Run("keeps set values", func(t *testing.T) {
		cfg := &Config{
			Workers: 16,
			Headers: Headers{MaxSpace: -1},
			Body:    Body{MaxSize: 10},
		}
		filled := Fill(cfg)
		require.Equal(t, 16, filled.Workers)
		require.Equal(t, uint64(10), filled.Body.MaxSize)
		require.Equal(t, Default().Headers.MaxSpace, filled.Headers.MaxSpace)
		require.Equal(t, Default().Headers.Number, filled.Headers.Number)
		require.Equal(t, Default().Server.Name, filled.Server.Name)
		// the original must stay intact
		require.Equal(t, -1, cfg.Headers.MaxSpace)
	})
}

type variable struct {
	Type  reflect.Type
	Value reflect.Value
}

func newVar(a any) variable {
	return variable{reflect.TypeOf(a), reflect.ValueOf(a)}
}

func visit(a variable, name string, nullable bool) (fields []string) {
	if a.Type.Kind() == reflect.Struct {
		for field := range a.Value.NumField() {
			v1 := variable{a.Type.Field(field).Type, a.Value.Field(field)}
			fieldname := a.Type.Field(field).Name
			isNullable := a.Type.Field(field).Tag.Get("test") == "nullable"
			fields = append(fields, visit(v1, name+"."+fieldname, isNullable)...)
		}

		return fields
	}

	if a.Value.IsZero() && !nullable {
		return []string{name}
	}

	return nil
}
