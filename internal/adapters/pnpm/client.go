// Package pnpm queries the installed dependency tree through the pnpm CLI.
package pnpm

import (
	"context"
	"strconv"
	"strings"

	"go.trai.ch/locksmith/internal/core/domain"
	"go.trai.ch/locksmith/internal/core/ports"
	"go.trai.ch/zerr"
)

// Binary is the executable invoked by the default runner.
const Binary = "pnpm"

// Client implements ports.PackageManager for pnpm.
type Client struct {
	run    Runner
	logger ports.Logger
}

// NewClient creates a client invoking the pnpm executable.
func NewClient(logger ports.Logger) *Client {
	return NewClientWithRunner(NewExecRunner(Binary), logger)
}

// NewClientWithRunner creates a client using a custom runner.
func NewClientWithRunner(run Runner, logger ports.Logger) *Client {
	return &Client{
		run:    run,
		logger: logger,
	}
}

// List runs `pnpm --json ls` in dir.
func (c *Client) List(ctx context.Context, dir string, opts ports.ListOptions) (*domain.Workspace, error) {
	args := []string{"--json", "ls"}
	if opts.Recursive {
		args = append(args, "--recursive")
	}
	if opts.Depth != nil {
		args = append(args, "--depth", strconv.Itoa(*opts.Depth))
	}
	return c.query(ctx, dir, args)
}

// Why runs `pnpm --json why <name>` in dir.
func (c *Client) Why(ctx context.Context, dir, name string) (*domain.Workspace, error) {
	ws, err := c.query(ctx, dir, []string{"--json", "why", name})
	if err != nil {
		return nil, zerr.With(err, "package", name)
	}
	return ws, nil
}

func (c *Client) query(ctx context.Context, dir string, args []string) (*domain.Workspace, error) {
	c.logger.Debug(Binary + " " + strings.Join(args, " "))

	out, err := c.run(ctx, dir, args...)
	if err != nil {
		return nil, err
	}

	ws, err := parseWorkspace(out)
	if err != nil {
		return nil, zerr.With(err, "command", Binary+" "+strings.Join(args, " "))
	}
	return ws, nil
}
