package shell

import (
	"errors"

	"github.com/abiosoft/ishell"

	"github.com/juruen/digitrec/session"
)

func wordCompleter(words ...string) func([]string) []string {
	return func(args []string) []string {
		if len(args) > 0 {
			return nil
		}
		return words
	}
}

func modeCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "mode",
		Help:      "switch capture mode and start over, usage: mode <draw|upload>",
		Completer: wordCompleter("draw", "upload"),
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Println(ctx.Session.Mode())
				return
			}

			m, err := session.ParseMode(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}

			ctx.Session.SwitchMode(m)
			c.SetPrompt(ctx.prompt())
		},
	}
}

func autoCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "auto",
		Help:      "arm or disarm automatic prediction, usage: auto <on|off>",
		Completer: wordCompleter("on", "off"),
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(errors.New("missing on|off"))
				return
			}

			switch c.Args[0] {
			case "on":
				ctx.Session.SetAutoPredict(true)
			case "off":
				ctx.Session.SetAutoPredict(false)
			default:
				c.Err(errors.New("expected on or off"))
				return
			}
			c.SetPrompt(ctx.prompt())
		},
	}
}
