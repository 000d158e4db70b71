// Command goturtle-send streams a G-code program to the robot over its
// serial link.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"goturtle/config"
	"goturtle/gcode"
	"goturtle/stream"
)

func main() {
	utils.ContextualMain(mainWithArgs, golog.NewDevelopmentLogger("goturtle-send"))
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	fs := flag.NewFlagSet("goturtle-send", flag.ContinueOnError)
	device := fs.String("device", "", "serial device (default from config)")
	cfgPath := fs.String("config", "", "machine config (JSON)")
	align := fs.Bool("align", false, "fold Z0/Z1 pen moves into G0/G1 first")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: goturtle-send [flags] <program.gcode>")
	}

	cfg := config.Default()
	if *cfgPath != "" {
		data, err := os.ReadFile(*cfgPath)
		if err != nil {
			return errors.Wrap(err, "reading config")
		}
		if cfg, err = config.Load(data); err != nil {
			return errors.Wrap(err, "parsing config")
		}
	}
	if *device != "" {
		cfg.Device = *device
	}

	program, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return errors.Wrap(err, "reading program")
	}
	text := string(program)
	if *align {
		text = gcode.Align(text)
	}

	port, err := stream.Open(stream.PortConfig{Device: cfg.Device, Baud: cfg.Baud})
	if err != nil {
		return err
	}

	sender := stream.NewSender(port, cfg.LineDelay, nil, logger)
	return multierr.Combine(
		sender.Send(ctx, strings.NewReader(text)),
		sender.Close(),
	)
}
