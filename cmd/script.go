package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/routerdrawer/internal/app"
	"github.com/desertthunder/routerdrawer/internal/flow"
	"github.com/desertthunder/routerdrawer/internal/formatter"
	"github.com/desertthunder/routerdrawer/internal/shared"
	"github.com/desertthunder/routerdrawer/internal/timer"
	"github.com/urfave/cli/v3"
)

// Script is a scripted session. Each step performs one operation and may check the screen it lands on.
//
//	[[step]]
//	press = "login"
//
//	[[step]]
//	advance = "3s"
//	expect = "Dashboard"
type Script struct {
	Name  string `toml:"name"`
	Steps []Step `toml:"step"`
}

// Step is one entry of a [Script]. Exactly one of Press, Advance, Field, Answer or Navigate is set,
// unless the step only carries Expect.
type Step struct {
	Press    string        `toml:"press"`
	Advance  time.Duration `toml:"advance"`
	Field    string        `toml:"field"`
	Value    string        `toml:"value"`
	Answer   *bool         `toml:"answer"`
	Navigate string        `toml:"navigate"`
	Expect   string        `toml:"expect"`
}

// ParseScript decodes and validates a TOML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if _, err := toml.Decode(string(data), &s); err != nil {
		return nil, fmt.Errorf("%w: failed to parse script: %v", shared.ErrInvalidInput, err)
	}

	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("%w: step %d: %v", shared.ErrInvalidInput, i+1, err)
		}
	}
	return &s, nil
}

func (s Step) validate() error {
	ops := 0
	if s.Press != "" {
		ops++
		if _, err := app.ParseAction(s.Press); err != nil {
			return err
		}
	}
	if s.Advance != 0 {
		ops++
		if s.Advance < 0 {
			return fmt.Errorf("negative advance %s", s.Advance)
		}
	}
	if s.Field != "" {
		ops++
	}
	if s.Answer != nil {
		ops++
	}
	if s.Navigate != "" {
		ops++
		if _, err := flow.ParseScreen(s.Navigate); err != nil {
			return err
		}
	}
	if s.Expect != "" {
		if _, err := flow.ParseScreen(s.Expect); err != nil {
			return err
		}
	}

	switch {
	case ops > 1:
		return fmt.Errorf("more than one operation")
	case ops == 0 && s.Expect == "":
		return fmt.Errorf("empty step")
	}
	return nil
}

func (s Step) describe() string {
	switch {
	case s.Press != "":
		return "press " + s.Press
	case s.Advance != 0:
		return "advance " + s.Advance.String()
	case s.Field != "":
		return fmt.Sprintf("field %s=%q", s.Field, s.Value)
	case s.Answer != nil:
		if *s.Answer {
			return "answer yes"
		}
		return "answer no"
	case s.Navigate != "":
		return "navigate " + s.Navigate
	}
	return "expect " + s.Expect
}

// apply performs the step. Errors returned here are user-level outcomes recorded in the result, not script
// failures.
func (s Step) apply(a *app.App, clock *timer.Manual) error {
	switch {
	case s.Press != "":
		act, _ := app.ParseAction(s.Press)
		return a.Press(act)
	case s.Advance != 0:
		clock.Advance(s.Advance)
	case s.Field != "":
		return a.SetField(s.Field, s.Value)
	case s.Answer != nil:
		return a.Answer(*s.Answer)
	case s.Navigate != "":
		target, _ := flow.ParseScreen(s.Navigate)
		return a.Controller().Navigate(target)
	}
	return nil
}

// RunScript replays s on a fresh app driven by a virtual clock and calls report after every step.
// It stops at the first step whose Expect does not match.
func (r *Runner) RunScript(s *Script, report func(formatter.Step) error) error {
	clock := timer.NewManual()
	a := app.New(app.Opts{Config: r.config, Scheduler: clock, Logger: r.logger})
	if err := a.Start(); err != nil {
		return err
	}
	defer a.Close()

	r.logger.Debug("running script", "name", s.Name, "steps", len(s.Steps), "session", a.SessionID())

	for i, step := range s.Steps {
		opErr := step.apply(a, clock)
		v := a.View()

		res := formatter.Step{
			Step:    i + 1,
			Op:      step.describe(),
			Clock:   clock.Now().String(),
			Screen:  v.Screen,
			Stack:   v.Stack,
			Loading: v.Loading,
			Drawer:  v.Drawer,
			Error:   v.Error,
		}
		if v.Dialog != nil {
			res.Dialog = v.Dialog.Title
		}
		if opErr != nil {
			res.Error = opErr.Error()
		}

		if err := report(res); err != nil {
			return err
		}

		if step.Expect != "" {
			want, _ := flow.ParseScreen(step.Expect)
			if v.Screen != want {
				return fmt.Errorf("%w: step %d: expected %s, got %s", shared.ErrExpectation, i+1, want, v.Screen)
			}
		}
	}
	return nil
}

// Script runs the script file named by the first argument.
func (r *Runner) Script(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: script file", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		format = formatter.FormatJSON
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	s, err := ParseScript(data)
	if err != nil {
		return err
	}

	if out := cmd.String("output"); out != "" {
		var steps []formatter.Step
		runErr := r.RunScript(s, func(res formatter.Step) error {
			steps = append(steps, res)
			return nil
		})
		if err := formatter.WriteExport(format, s.Name, steps, out); err != nil {
			return err
		}
		r.logger.Info("wrote transcript", "path", out, "format", format, "steps", len(steps))
		return runErr
	}

	switch format {
	case formatter.FormatJSON:
		return r.RunScript(s, func(res formatter.Step) error { return r.writeJSON(res, false) })
	case formatter.FormatText:
		return r.RunScript(s, r.writeStep)
	}

	var steps []formatter.Step
	runErr := r.RunScript(s, func(res formatter.Step) error {
		steps = append(steps, res)
		return nil
	})
	out, err := formatter.Export(format, s.Name, steps)
	if err != nil {
		return err
	}
	if err := r.writePlain("%s", out); err != nil {
		return err
	}
	return runErr
}

func (r *Runner) writeStep(res formatter.Step) error {
	return r.writePlain("%s\n", formatter.StepLine(res))
}
