// Command goturtle-sim runs a G-code program against the motion core with
// a recording phase driver instead of hardware, reporting the step totals
// and final pose. Useful for checking a program before plotting it.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/edaniels/golog"
	"go.viam.com/utils"

	"goturtle/motion"
	"goturtle/pen"
	"goturtle/plotter"
)

func main() {
	utils.ContextualMain(mainWithArgs, golog.NewDevelopmentLogger("goturtle-sim"))
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	fs := flag.NewFlagSet("goturtle-sim", flag.ContinueOnError)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var program io.Reader = os.Stdin
	if fs.NArg() == 1 {
		file, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer file.Close()
		program = file
	}

	driver := &motion.Recorder{}
	calib := motion.NewCalibration()
	planner := motion.NewPlanner()
	// A nanosecond settle keeps the simulation quick while preserving the
	// per-step sequencing.
	exec := motion.NewExecutor(driver, calib, motion.DefaultStepsPerRev, time.Nanosecond, nil)
	lift := &pen.Fake{}
	bot := plotter.New(planner, exec, calib, lift, os.Stdout)

	sc := bufio.NewScanner(program)
	lines := 0
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		bot.ProcessLine([]byte(sc.Text()))
		lines++
	}
	if err := sc.Err(); err != nil {
		return err
	}

	pos, bearing := bot.Pose()
	fmt.Printf("processed %d lines\n", lines)
	fmt.Printf("steps: left=%d right=%d\n", driver.Steps(motion.Left), driver.Steps(motion.Right))
	fmt.Printf("pose: (%.2f, %.2f) bearing %.4f rad, pen up=%v\n", pos.X, pos.Y, bearing, lift.Up)
	return nil
}
