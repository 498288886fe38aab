package shell

import (
	"github.com/abiosoft/ishell"

	"github.com/juruen/digitrec/version"
)

func statusCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "status",
		Help: "show the session state",
		Func: func(c *ishell.Context) {
			snap := ctx.Session.Snapshot()
			c.SetPrompt(ctx.prompt())

			if ctx.JSONOutput {
				if err := displaySnapshotJSON(c, snap); err != nil {
					c.Err(err)
				}
				return
			}

			c.Printf("session: %s\n", snap.SessionID)
			c.Printf("mode: %s\n", snap.Mode)
			c.Printf("service: %s\n", snap.Health)
			c.Printf("auto predict: %t\n", snap.AutoPredict)
			c.Printf("strokes: %d\n", snap.Strokes)
			c.Printf("in flight: %t\n", snap.InFlight)
			c.Printf("can predict: %t\n", snap.CanPredict)
			if snap.Upload != nil {
				c.Printf("upload: %s (%s, %d bytes)\n", snap.Upload.Name, snap.Upload.Format, snap.Upload.Size)
			}
			if snap.Result != nil {
				c.Printf("last digit: %d (%.1f%%)\n", snap.Result.Digit, snap.Result.Confidence)
			}
		},
	}
}

func clearCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "clear",
		Help: "blank the surface and forget the last result",
		Func: func(c *ishell.Context) {
			ctx.Session.Clear()
		},
	}
}

func versionCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "version",
		Help: "show version",
		Func: func(c *ishell.Context) {
			c.Println(version.Version)
		},
	}
}
