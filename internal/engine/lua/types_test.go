package lua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func evalTable(t *testing.T, expr string) any {
	t.Helper()
	L := lua.NewState()
	defer L.Close()
	require.NoError(t, L.DoString("v = "+expr))
	return ConvertLuaTypesToGolang(L.GetGlobal("v"))
}

func TestConvertLuaTypesToGolang_Tables(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want any
	}{
		{"empty", `{}`, []any{}},
		{"sequence", `{"a", "b", "c"}`, []any{"a", "b", "c"}},
		{"explicit sequence keys", `{[2] = "b", [1] = "a", [3] = "c"}`, []any{"a", "b", "c"}},
		{"sparse keys", `{[1] = "a", [3] = "c"}`, map[string]any{"1": "a", "3": "c"}},
		{"hole", `{1, nil, 3}`, map[string]any{"1": float64(1), "3": float64(3)}},
		{"zero key", `{[0] = "z", [1] = "a"}`, map[string]any{"0": "z", "1": "a"}},
		{"mixed keys", `{"a", title = "x"}`, map[string]any{"1": "a", "title": "x"}},
		{"nested", `{{id = 1}, {id = 2}}`, []any{
			map[string]any{"id": float64(1)},
			map[string]any{"id": float64(2)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evalTable(t, tt.expr))
		})
	}
}
