package shell

import (
	"errors"
	"fmt"
	"os"

	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"

	"github.com/juruen/digitrec/canvas"
)

func saveCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "save",
		Help: "write the surface as png, usage: save [--data-url] <file>",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("save", flag.ContinueOnError)
			var dataURL bool
			flagSet.BoolVarP(&dataURL, "data-url", "d", false, "print the payload sent to the service instead of writing a file")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			args := flagSet.Args()

			data, err := ctx.Session.EncodePNG()
			if err != nil {
				c.Err(err)
				return
			}

			if dataURL {
				c.Println(canvas.EncodeDataURL(data))
				return
			}

			if len(args) == 0 {
				c.Err(errors.New("missing destination file"))
				return
			}

			if err := os.WriteFile(args[0], data, 0644); err != nil {
				c.Err(fmt.Errorf("failed to write %s: %v", args[0], err))
				return
			}
			c.Println("OK")
		},
	}
}
