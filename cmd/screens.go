package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/routerdrawer/internal/app"
	"github.com/desertthunder/routerdrawer/internal/flow"
	"github.com/desertthunder/routerdrawer/internal/timer"
	"github.com/urfave/cli/v3"
)

// ScreenInfo describes the controls a screen offers right after it mounts.
type ScreenInfo struct {
	Screen  flow.Screen `json:"screen"`
	Fields  []string    `json:"fields,omitempty"`
	Actions []string    `json:"actions"`
}

// DescribeScreens mounts each screen on its own throwaway app and records what it offers.
func (r *Runner) DescribeScreens() ([]ScreenInfo, error) {
	infos := make([]ScreenInfo, 0, len(flow.Screens()))
	for _, s := range flow.Screens() {
		a := app.New(app.Opts{Config: r.config, Scheduler: timer.NewManual(), Logger: r.logger})
		if err := a.Start(); err != nil {
			return nil, err
		}
		if s != flow.Splash {
			if err := a.Controller().Reset(s); err != nil {
				a.Close()
				return nil, fmt.Errorf("failed to mount %s: %w", s, err)
			}
		}

		v := a.View()
		info := ScreenInfo{Screen: s, Actions: make([]string, len(v.Actions))}
		for _, f := range v.Fields {
			info.Fields = append(info.Fields, f.Name)
		}
		for i, act := range v.Actions {
			info.Actions[i] = act.String()
		}
		infos = append(infos, info)
		a.Close()
	}
	return infos, nil
}

// Screens lists every screen with its fields and actions.
func (r *Runner) Screens(ctx context.Context, cmd *cli.Command) error {
	infos, err := r.DescribeScreens()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(infos, true)
	}

	for _, info := range infos {
		if err := r.writePlain("%-15s %s\n", info.Screen, strings.Join(info.Actions, ", ")); err != nil {
			return err
		}
		if len(info.Fields) > 0 {
			if err := r.writePlain("%-15s fields: %s\n", "", strings.Join(info.Fields, ", ")); err != nil {
				return err
			}
		}
	}
	return nil
}
