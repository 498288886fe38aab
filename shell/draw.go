package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/juruen/digitrec/canvas"
	"github.com/juruen/digitrec/session"
)

// parsePoint accepts "x,y".
func parsePoint(arg string) (canvas.Point, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return canvas.Point{}, fmt.Errorf("invalid point %q, want x,y", arg)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return canvas.Point{}, fmt.Errorf("invalid x in %q", arg)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return canvas.Point{}, fmt.Errorf("invalid y in %q", arg)
	}
	return canvas.Point{X: x, Y: y}, nil
}

func parsePoints(args []string) ([]canvas.Point, error) {
	points := make([]canvas.Point, 0, len(args))
	for _, a := range args {
		p, err := parsePoint(a)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func drawOnly(ctx *ShellCtxt, c *ishell.Context) bool {
	if ctx.Session.Mode() != session.Draw {
		c.Err(errors.New("drawing is only available in draw mode"))
		return false
	}
	return true
}

func downCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "down",
		Help: "press the pointer, usage: down x,y",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(errors.New("usage: down x,y"))
				return
			}
			p, err := parsePoint(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			if drawOnly(ctx, c) {
				ctx.Session.MouseDown(p.X, p.Y)
			}
		},
	}
}

func moveCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "move",
		Help: "move the pointer through one or more points, usage: move x,y [x,y...]",
		Func: func(c *ishell.Context) {
			points, err := parsePoints(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if len(points) == 0 {
				c.Err(errors.New("missing point"))
				return
			}
			if !drawOnly(ctx, c) {
				return
			}
			for _, p := range points {
				ctx.Session.MouseMove(p.X, p.Y)
			}
		},
	}
}

func upCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "up",
		Help: "release the pointer",
		Func: func(c *ishell.Context) {
			if drawOnly(ctx, c) {
				ctx.Session.MouseUp()
			}
		},
	}
}

func leaveCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "leave",
		Help: "move the pointer off the surface",
		Func: func(c *ishell.Context) {
			if drawOnly(ctx, c) {
				ctx.Session.MouseLeave()
			}
		},
	}
}

func strokeCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "stroke",
		Help: "draw a complete stroke, usage: stroke x,y [x,y...]",
		Func: func(c *ishell.Context) {
			points, err := parsePoints(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if len(points) == 0 {
				c.Err(errors.New("missing points"))
				return
			}

			if err := ctx.Session.Stroke(points); err != nil {
				c.Err(err)
				return
			}
			if !ctx.JSONOutput {
				c.Printf("strokes: %d\n", ctx.Session.Snapshot().Strokes)
			}
		},
	}
}
