package externals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordPressGlobal(t *testing.T) {
	tests := []struct {
		request  string
		expected GlobalPath
		ok       bool
	}{
		{"@wordpress/element", GlobalPath{"wp", "element"}, true},
		{"@wordpress/block-editor", GlobalPath{"wp", "blockEditor"}, true},
		{"@wordpress/edit-post", GlobalPath{"wp", "editPost"}, true},
		{"lodash", GlobalPath{"lodash"}, true},
		{"lodash-es", GlobalPath{"lodash"}, true},
		{"jquery", GlobalPath{"jQuery"}, true},
		{"react", GlobalPath{"React"}, true},
		{"react-dom", GlobalPath{"ReactDOM"}, true},
		{"react/jsx-runtime", GlobalPath{"ReactJSXRuntime"}, true},
		{"moment", GlobalPath{"moment"}, true},
		{"@babel/runtime/regenerator", GlobalPath{"regeneratorRuntime"}, true},
		{"@wordpress/icons", nil, false},
		{"@wordpress/interface", nil, false},
		{"@wordpress/", nil, false},
		{"@wordpress/components/build-style/style.css", nil, false},
		{"classnames", nil, false},
		{"./edit.js", nil, false},
	}

	m := WordPress()
	for _, tt := range tests {
		t.Run(tt.request, func(t *testing.T) {
			got, ok := m.Global(tt.request)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWordPressHandle(t *testing.T) {
	tests := []struct {
		request  string
		expected string
		ok       bool
	}{
		{"@wordpress/blocks", "wp-blocks", true},
		{"@wordpress/block-editor", "wp-block-editor", true},
		{"@babel/runtime/regenerator", "wp-polyfill", true},
		{"lodash-es", "lodash", true},
		{"react/jsx-runtime", "react-jsx-runtime", true},
		{"react", "", false},
		{"lodash", "", false},
		{"classnames", "", false},
	}

	m := WordPress()
	for _, tt := range tests {
		t.Run(tt.request, func(t *testing.T) {
			got, ok := m.Handle(tt.request)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTable(t *testing.T) {
	table, err := NewTable(nil, map[string]External{
		"my-lib":       {Global: GlobalPath{"myPlugin", "lib"}, Handle: "my-plugin-lib"},
		"react":        {Global: GlobalPath{"React"}, Handle: "react"},
		"no-handle-ok": {Global: GlobalPath{"noHandle"}},
	}, []string{"@wordpress/data"})
	require.NoError(t, err)

	t.Run("override adds external", func(t *testing.T) {
		path, ok := table.Global("my-lib")
		require.True(t, ok)
		assert.Equal(t, GlobalPath{"myPlugin", "lib"}, path)

		handle, ok := table.Handle("my-lib")
		require.True(t, ok)
		assert.Equal(t, "my-plugin-lib", handle)
	})

	t.Run("override replaces default handle", func(t *testing.T) {
		handle, ok := table.Handle("react")
		require.True(t, ok)
		assert.Equal(t, "react", handle)
	})

	t.Run("override without handle", func(t *testing.T) {
		_, ok := table.Handle("no-handle-ok")
		assert.False(t, ok)
	})

	t.Run("bundled request is not external", func(t *testing.T) {
		_, ok := table.Global("@wordpress/data")
		assert.False(t, ok)
		_, ok = table.Handle("@wordpress/data")
		assert.False(t, ok)
	})

	t.Run("falls back to defaults", func(t *testing.T) {
		path, ok := table.Global("@wordpress/i18n")
		require.True(t, ok)
		assert.Equal(t, GlobalPath{"wp", "i18n"}, path)
	})

	t.Run("returned path is a copy", func(t *testing.T) {
		path, _ := table.Global("my-lib")
		path[0] = "changed"
		again, _ := table.Global("my-lib")
		assert.Equal(t, "myPlugin", again[0])
	})
}

func TestNewTableRejectsEmptyGlobal(t *testing.T) {
	_, err := NewTable(nil, map[string]External{"broken": {Handle: "broken"}}, nil)
	assert.Error(t, err)

	_, err = NewTable(nil, map[string]External{"broken": {Global: GlobalPath{"a", ""}}}, nil)
	assert.Error(t, err)
}
