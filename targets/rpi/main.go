//go:build linux

// Runner for a Raspberry Pi-driven plotter: winding banks on the GPIO
// header, pen servo on the hardware PWM pin, command lines on stdin (wire
// a serial tty here to drive it remotely).
package main

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/edaniels/golog"
	"github.com/stianeikeland/go-rpio/v4"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"goturtle/motion"
	"goturtle/plotter"
)

const (
	penUpAngle   = 90
	penDownAngle = 10
	// 50 Hz servo frame split into 10 µs slots; 1-2 ms pulses span the
	// usual 0-180° range.
	servoCycle = 2000
	settleTime = 300 * time.Millisecond
)

// bankDriver energizes two 4-winding banks through the GPIO header.
type bankDriver struct {
	banks [2][4]rpio.Pin
}

func newBankDriver(left, right [4]rpio.Pin) *bankDriver {
	d := &bankDriver{banks: [2][4]rpio.Pin{left, right}}
	for _, bank := range d.banks {
		for _, pin := range bank {
			pin.Output()
			pin.Low()
		}
	}
	return d
}

func (d *bankDriver) ApplyPhase(m motion.Motor, index int) byte {
	pattern := motion.PatternFor(index)
	for i, pin := range d.banks[m] {
		if pattern&(1<<i) != 0 {
			pin.High()
		} else {
			pin.Low()
		}
	}
	return pattern
}

// servoLift swings the pen arm with the Pi's hardware PWM.
type servoLift struct {
	pin      rpio.Pin
	up, down int
}

func newServoLift(pin rpio.Pin) *servoLift {
	pin.Mode(rpio.Pwm)
	pin.Freq(50 * servoCycle)
	return &servoLift{pin: pin, up: penUpAngle, down: penDownAngle}
}

func (l *servoLift) set(angle int) {
	duty := uint32(100 + angle*100/180)
	l.pin.DutyCycle(duty, servoCycle)
	time.Sleep(settleTime)
}

func (l *servoLift) Raise() { l.set(l.up) }
func (l *servoLift) Lower() { l.set(l.down) }

func main() {
	utils.ContextualMain(mainWithArgs, golog.NewDevelopmentLogger("goturtle"))
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) (err error) {
	if err := rpio.Open(); err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, rpio.Close())
	}()

	driver := newBankDriver(
		[4]rpio.Pin{rpio.Pin(2), rpio.Pin(3), rpio.Pin(4), rpio.Pin(17)},
		[4]rpio.Pin{rpio.Pin(27), rpio.Pin(22), rpio.Pin(10), rpio.Pin(9)},
	)
	lift := newServoLift(rpio.Pin(18))

	calib := motion.NewCalibration()
	planner := motion.NewPlanner()
	exec := motion.NewExecutor(driver, calib, motion.DefaultStepsPerRev, motion.DefaultStepDelay, nil)
	bot := plotter.New(planner, exec, calib, lift, os.Stdout)

	lift.Raise()
	defer exec.Release()

	logger.Info("plotter ready")
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		bot.ProcessLine(sc.Bytes())
	}
	return sc.Err()
}
