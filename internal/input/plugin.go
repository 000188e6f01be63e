package input

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ayusman/mudra/internal/plugin"
)

// PluginInjector forwards every event to the first discovered plugin whose
// manifest lists the matching action.
type PluginInjector struct {
	manager  *plugin.Manager
	executor *plugin.Executor
}

// NewPluginInjector creates an injector backed by manager's plugins.
func NewPluginInjector(manager *plugin.Manager, executor *plugin.Executor) *PluginInjector {
	return &PluginInjector{manager: manager, executor: executor}
}

func (p *PluginInjector) Click() error       { return p.send(plugin.ActionClick, nil) }
func (p *PluginInjector) DoubleClick() error { return p.send(plugin.ActionDoubleClick, nil) }
func (p *PluginInjector) MouseDown() error   { return p.send(plugin.ActionMouseDown, nil) }
func (p *PluginInjector) MouseUp() error     { return p.send(plugin.ActionMouseUp, nil) }

func (p *PluginInjector) MoveRelative(dx, dy int) error {
	return p.send(plugin.ActionMove, plugin.MoveParams{DX: dx, DY: dy})
}

func (p *PluginInjector) Scroll(amount int) error {
	return p.send(plugin.ActionScroll, plugin.ScrollParams{Amount: amount})
}

func (p *PluginInjector) Hotkey(modifier, key string) error {
	return p.send(plugin.ActionHotkey, plugin.HotkeyParams{Modifier: modifier, Key: key})
}

func (p *PluginInjector) send(action string, params any) error {
	plug, err := p.manager.Find(action)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	req := &plugin.Request{Action: action}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("%s: marshal params: %w", action, err)
		}
		req.Params = raw
	}

	resp, err := p.executor.Execute(context.Background(), plug, req)
	if err != nil {
		return err
	}
	if !resp.Success {
		if resp.Error == "" {
			return errors.New(action + ": plugin reported failure")
		}
		return fmt.Errorf("%s: %s", action, resp.Error)
	}
	return nil
}
