package roon

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"
)

// Client is a typed facade over the controller's command surface. Every
// method is a synchronous, independent subprocess invocation; the controller
// itself keeps the browse session between calls.
type Client struct {
	runner Runner
	logger *zap.Logger
}

// NewClient creates a client that executes commands through runner.
func NewClient(runner Runner, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		runner: runner,
		logger: logger,
	}
}

// Zones returns every zone known to the core.
func (c *Client) Zones(ctx context.Context) ([]Zone, error) {
	var zones []Zone
	if err := c.runJSON(ctx, &zones, "zones", "--json"); err != nil {
		return nil, err
	}
	return zones, nil
}

// SetZone makes the zone with the given display name the controller's active zone.
func (c *Client) SetZone(ctx context.Context, name string) error {
	return c.run(ctx, "zone", "set", name)
}

// PlayPause toggles playback in the active zone.
func (c *Client) PlayPause(ctx context.Context) error {
	return c.run(ctx, "playpause")
}

// Next skips to the next track.
func (c *Client) Next(ctx context.Context) error {
	return c.run(ctx, "next")
}

// Prev returns to the previous track.
func (c *Client) Prev(ctx context.Context) error {
	return c.run(ctx, "prev")
}

// Shuffle turns shuffle on or off.
func (c *Client) Shuffle(ctx context.Context, on bool) error {
	return c.run(ctx, "shuffle", onOff(on))
}

// SetLoop sets the loop mode.
func (c *Client) SetLoop(ctx context.Context, mode LoopMode) error {
	return c.run(ctx, "loop", string(mode))
}

// Radio turns auto-radio on or off.
func (c *Client) Radio(ctx context.Context, on bool) error {
	return c.run(ctx, "radio", onOff(on))
}

// Volume changes the volume of the named output. value is passed through
// verbatim, e.g. "+5", "-5" or "40".
func (c *Client) Volume(ctx context.Context, output, value string) error {
	return c.run(ctx, "volume", value, "--output", output)
}

// Mute mutes the named output.
func (c *Client) Mute(ctx context.Context, output string) error {
	return c.run(ctx, "mute", "--output", output)
}

// Unmute unmutes the named output.
func (c *Client) Unmute(ctx context.Context, output string) error {
	return c.run(ctx, "unmute", "--output", output)
}

// Browse resets the controller's browse session to the library root.
func (c *Client) Browse(ctx context.Context) (*BrowseResult, error) {
	return c.browseJSON(ctx, "browse", "--json")
}

// Search starts a search session for query.
func (c *Client) Search(ctx context.Context, query string) (*BrowseResult, error) {
	return c.browseJSON(ctx, "search", query, "--json")
}

// Select opens the item at the zero-based index of the current listing.
// The controller numbers items from 1.
func (c *Client) Select(ctx context.Context, index int) (*BrowseResult, error) {
	return c.browseJSON(ctx, "select", strconv.Itoa(index+1), "--json")
}

// Back pops one level of the browse session.
func (c *Client) Back(ctx context.Context) (*BrowseResult, error) {
	return c.browseJSON(ctx, "back", "--json")
}

func (c *Client) run(ctx context.Context, args ...string) error {
	_, err := c.runner.Run(ctx, args...)
	if err != nil {
		c.logger.Debug("controller command failed", zap.Strings("args", args), zap.Error(err))
	}
	return err
}

func (c *Client) runJSON(ctx context.Context, v any, args ...string) error {
	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		c.logger.Debug("controller command failed", zap.Strings("args", args), zap.Error(err))
		return err
	}
	if err := json.Unmarshal(out, v); err != nil {
		return &DecodeError{
			Args:   args,
			Output: string(out),
			Err:    err,
		}
	}
	return nil
}

func (c *Client) browseJSON(ctx context.Context, args ...string) (*BrowseResult, error) {
	var result BrowseResult
	if err := c.runJSON(ctx, &result, args...); err != nil {
		return nil, err
	}
	return &result, nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
