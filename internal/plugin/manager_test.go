package plugin

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeManifest creates dir/<name>/plugin.json and returns the plugin dir.
func writeManifest(t *testing.T, dir string, manifest Manifest) string {
	t.Helper()

	pluginDir := filepath.Join(dir, manifest.Name)
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), data, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return pluginDir
}

func TestManager_Discover(t *testing.T) {
	tmpDir := t.TempDir()
	pluginDir := writeManifest(t, tmpDir, Manifest{
		Name:        "pointer",
		Version:     "1.0.0",
		Description: "Pointer actions",
		Executable:  "pointer",
		Actions:     []string{ActionClick, ActionMove},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := manager.List()
	if len(plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(plugins))
	}

	plugin := plugins[0]
	if plugin.Manifest.Name != "pointer" {
		t.Errorf("expected plugin name 'pointer', got %q", plugin.Manifest.Name)
	}
	if plugin.Manifest.Description != "Pointer actions" {
		t.Errorf("expected description 'Pointer actions', got %q", plugin.Manifest.Description)
	}
	if len(plugin.Manifest.Actions) != 2 {
		t.Errorf("expected 2 actions, got %d", len(plugin.Manifest.Actions))
	}
	if plugin.Path != pluginDir {
		t.Errorf("expected path %q, got %q", pluginDir, plugin.Path)
	}
	if plugin.Executable != filepath.Join(pluginDir, "pointer") {
		t.Errorf("unexpected executable path %q", plugin.Executable)
	}
}

func TestManager_Discover_Skips(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{
			name:  "empty dir",
			setup: func(t *testing.T, dir string) {},
		},
		{
			name: "invalid json",
			setup: func(t *testing.T, dir string) {
				pluginDir := filepath.Join(dir, "bad")
				os.MkdirAll(pluginDir, 0755)
				os.WriteFile(filepath.Join(pluginDir, "plugin.json"), []byte("not valid json"), 0644)
			},
		},
		{
			name: "missing executable",
			setup: func(t *testing.T, dir string) {
				writeManifest(t, dir, Manifest{Name: "noexec", Actions: []string{ActionClick}})
			},
		},
		{
			name: "directory without manifest",
			setup: func(t *testing.T, dir string) {
				os.MkdirAll(filepath.Join(dir, "empty"), 0755)
			},
		},
		{
			name: "nested manifest",
			setup: func(t *testing.T, dir string) {
				writeManifest(t, filepath.Join(dir, "vendor"), Manifest{Name: "deep", Executable: "deep", Actions: []string{ActionClick}})
			},
		},
		{
			name: "plain file",
			setup: func(t *testing.T, dir string) {
				os.WriteFile(filepath.Join(dir, "README"), []byte("hi"), 0644)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			manager := NewManager(dir)
			if err := manager.Discover(); err != nil {
				t.Fatalf("Discover() failed: %v", err)
			}
			if n := len(manager.List()); n != 0 {
				t.Errorf("expected 0 plugins, got %d", n)
			}
		})
	}
}

func TestManager_Discover_NonExistentDir(t *testing.T) {
	manager := NewManager("/path/that/does/not/exist")

	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed on non-existent dir: %v", err)
	}
	if len(manager.List()) != 0 {
		t.Fatalf("expected 0 plugins, got %d", len(manager.List()))
	}
}

func TestManager_GetAndFind(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, Manifest{Name: "pointer", Executable: "pointer", Actions: []string{ActionClick, ActionScroll}})
	writeManifest(t, tmpDir, Manifest{Name: "keyboard", Executable: "keyboard", Actions: []string{ActionHotkey}})
	writeManifest(t, tmpDir, Manifest{Name: "alt-pointer", Executable: "alt", Actions: []string{ActionClick}})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugin, err := manager.Get("keyboard")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if plugin.Manifest.Name != "keyboard" {
		t.Errorf("Get() returned %q", plugin.Manifest.Name)
	}

	if _, err := manager.Get("nonexistent"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("expected ErrPluginNotFound, got %v", err)
	}

	tests := []struct {
		action string
		want   string
	}{
		{action: ActionClick, want: "alt-pointer"},
		{action: ActionScroll, want: "pointer"},
		{action: ActionHotkey, want: "keyboard"},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			plugin, err := manager.Find(tt.action)
			if err != nil {
				t.Fatalf("Find(%q) failed: %v", tt.action, err)
			}
			if plugin.Manifest.Name != tt.want {
				t.Errorf("Find(%q) = %q, want %q", tt.action, plugin.Manifest.Name, tt.want)
			}
		})
	}

	if _, err := manager.Find(ActionMouseDown); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("Find(mouse-down) error = %v, want ErrPluginNotFound", err)
	}
}

func TestManager_PluginDir(t *testing.T) {
	pluginDir := "/path/to/plugins"
	manager := NewManager(pluginDir)

	if manager.PluginDir() != pluginDir {
		t.Errorf("expected plugin dir %q, got %q", pluginDir, manager.PluginDir())
	}
}
