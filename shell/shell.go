package shell

import (
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/juruen/digitrec/session"
	"github.com/juruen/digitrec/version"
)

type ShellCtxt struct {
	Session    *session.Controller
	JSONOutput bool
}

func (ctx *ShellCtxt) prompt() string {
	s := ctx.Session.Snapshot()
	auto := ""
	if s.AutoPredict {
		auto = "|auto"
	}
	return fmt.Sprintf("[%s|%s%s]>", s.Mode, s.Health, auto)
}

func RunShell(ctrl *session.Controller, jsonOutput bool, args []string) error {
	shell := ishell.New()
	ctx := &ShellCtxt{
		Session:    ctrl,
		JSONOutput: jsonOutput,
	}

	shell.SetPrompt(ctx.prompt())

	shell.AddCmd(modeCmd(ctx))
	shell.AddCmd(autoCmd(ctx))
	shell.AddCmd(downCmd(ctx))
	shell.AddCmd(moveCmd(ctx))
	shell.AddCmd(upCmd(ctx))
	shell.AddCmd(leaveCmd(ctx))
	shell.AddCmd(strokeCmd(ctx))
	shell.AddCmd(uploadCmd(ctx))
	shell.AddCmd(predictCmd(ctx))
	shell.AddCmd(resultCmd(ctx))
	shell.AddCmd(clearCmd(ctx))
	shell.AddCmd(statusCmd(ctx))
	shell.AddCmd(saveCmd(ctx))
	shell.AddCmd(versionCmd(ctx))

	if len(args) > 0 {
		return shell.Process(args...)
	} else {
		shell.Printf("Digit recognition shell, version %s, health: %s\n", version.Version, ctrl.Health().State())
		shell.Run()

		return nil
	}
}
