package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"
)

func uploadCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "upload",
		Help: "place a local image on the surface, usage: upload [--predict] <file>",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("upload", flag.ContinueOnError)
			var predict bool
			flagSet.BoolVarP(&predict, "predict", "p", false, "request a prediction right after placing the image")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			args := flagSet.Args()

			if len(args) == 0 {
				c.Err(errors.New("missing source file"))
				return
			}

			srcName := args[0]
			data, err := os.ReadFile(srcName)
			if err != nil {
				c.Err(fmt.Errorf("failed to read %s: %v", srcName, err))
				return
			}

			placement, err := ctx.Session.PlaceUpload(filepath.Base(srcName), data)
			if err != nil {
				c.Err(err)
				return
			}

			if !ctx.JSONOutput {
				r := placement.Rect()
				c.Printf("placed %s at %v (scale %.3f)\n", filepath.Base(srcName), r, placement.Scale)
			}

			if !predict {
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
