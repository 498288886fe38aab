package shell

import (
	"context"
	"errors"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"

	"github.com/juruen/digitrec/session"
)

var errNothingDrawn = errors.New("nothing drawn yet")

// checkPredict reports why a manual prediction can't start, in the order a
// user needs to fix it: service first, then the surface.
func checkPredict(snap session.Snapshot) error {
	if snap.Health != session.Connected {
		return session.ErrServiceUnavailable
	}
	if snap.Mode == session.Draw && snap.Strokes == 0 {
		return errNothingDrawn
	}
	return nil
}

func predictCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "predict",
		Help: "send the surface to the recognition service",
		Func: func(c *ishell.Context) {
			if err := checkPredict(ctx.Session.Snapshot()); err != nil {
				c.Err(err)
				return
			}

			res, err := ctx.Session.RequestPrediction(context.Background())
			if err != nil {
				c.Err(err)
				return
			}

			if err := displayResult(c, res, ctx.JSONOutput); err != nil {
				c.Err(err)
			}
		},
	}
}

func resultCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "result",
		Help: "show the last recognition result, usage: result [--json]",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("result", flag.ContinueOnError)
			var asJSON bool
			flagSet.BoolVar(&asJSON, "json", ctx.JSONOutput, "print as json")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}

			res := ctx.Session.Result()
			if res == nil {
				c.Println("no result")
				return
			}

			if err := displayResult(c, res, asJSON); err != nil {
				c.Err(err)
			}
		},
	}
}
