package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"graphauth/internal/command"
	"graphauth/internal/config"
	"graphauth/internal/pattern"
)

const consoleHelp = `Commands:
  image <path>                    select the reference image for registration
  register <username> <x,y> ...   register a new pattern (3-5 points, in order)
  login <username>                begin a login flow
  attempt <x,y> ...               submit a pattern for the active login
  reset <username> <x,y> ...      replace an existing pattern
  help                            show this help
  quit                            exit`

// console is the line-oriented presentation layer. It only parses input,
// builds commands, and prints result messages; all decisions live behind
// the dispatcher.
type console struct {
	dispatcher *command.Dispatcher
	cfg        *config.Config
	in         io.Reader
	out        io.Writer

	// imagePath is the currently selected reference image, the console's
	// stand-in for an image picker.
	imagePath string
}

func newConsole(dispatcher *command.Dispatcher, cfg *config.Config, in io.Reader, out io.Writer) *console {
	return &console{
		dispatcher: dispatcher,
		cfg:        cfg,
		in:         in,
		out:        out,
		imagePath:  cfg.DefaultImagePath,
	}
}

func (c *console) run(ctx context.Context) {
	fmt.Fprintln(c.out, "Graphical pattern authentication")
	fmt.Fprintln(c.out, consoleHelp)

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return
		}
		if ctx.Err() != nil {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if !c.handle(ctx, fields[0], fields[1:]) {
			return
		}
	}
}

// handle executes one console line; it returns false to exit the loop.
func (c *console) handle(ctx context.Context, verb string, args []string) bool {
	switch verb {
	case "quit", "exit":
		return false

	case "help":
		fmt.Fprintln(c.out, consoleHelp)

	case "image":
		if len(args) != 1 {
			fmt.Fprintln(c.out, "usage: image <path>")
			break
		}
		c.imagePath = args[0]
		fmt.Fprintf(c.out, "Reference image set to %s\n", c.imagePath)

	case "register":
		if len(args) < 1 {
			fmt.Fprintln(c.out, "usage: register <username> <x,y> ...")
			break
		}
		points, err := parsePoints(args[1:])
		if err != nil {
			fmt.Fprintln(c.out, err)
			break
		}
		c.render(c.dispatcher.Dispatch(ctx, command.RegisterCommand{
			Username:  args[0],
			Points:    points,
			ImagePath: c.imagePath,
		}))

	case "login":
		if len(args) != 1 {
			fmt.Fprintln(c.out, "usage: login <username>")
			break
		}
		res := c.dispatcher.Dispatch(ctx, command.BeginLoginCommand{Username: args[0]})
		c.render(res)
		if res.OK {
			fmt.Fprintf(c.out, "Reference image: %s\n", res.ImagePath)
		}

	case "attempt":
		points, err := parsePoints(args)
		if err != nil {
			fmt.Fprintln(c.out, err)
			break
		}
		c.render(c.dispatcher.Dispatch(ctx, command.LoginAttemptCommand{Points: points}))

	case "reset":
		if len(args) < 1 {
			fmt.Fprintln(c.out, "usage: reset <username> <x,y> ...")
			break
		}
		points, err := parsePoints(args[1:])
		if err != nil {
			fmt.Fprintln(c.out, err)
			break
		}
		c.render(c.dispatcher.Dispatch(ctx, command.ResetPatternCommand{
			Username: args[0],
			Points:   points,
		}))

	default:
		fmt.Fprintf(c.out, "Unknown command %q; try help\n", verb)
	}

	return true
}

func (c *console) render(res command.Result) {
	fmt.Fprintln(c.out, res.Message)
}

// parsePoints converts "x,y" tokens into a pattern sequence.
func parsePoints(tokens []string) (pattern.Sequence, error) {
	points := make(pattern.Sequence, 0, len(tokens))
	for _, tok := range tokens {
		xs, ys, ok := strings.Cut(tok, ",")
		if !ok {
			return nil, fmt.Errorf("invalid point %q, expected x,y", tok)
		}
		x, err := strconv.Atoi(xs)
		if err != nil {
			return nil, fmt.Errorf("invalid point %q, expected x,y", tok)
		}
		y, err := strconv.Atoi(ys)
		if err != nil {
			return nil, fmt.Errorf("invalid point %q, expected x,y", tok)
		}
		points = append(points, pattern.Point{X: x, Y: y})
	}
	return points, nil
}
