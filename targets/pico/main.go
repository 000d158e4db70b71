//go:build rp2040

// Firmware entry point for the Pico-based plotter: two ULN2003 winding
// banks on GP2-GP9, a pen servo on GP15, command lines over USB CDC.
package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/servo"

	"goturtle/gcode"
	"goturtle/motion"
	"goturtle/plotter"
)

const (
	penUpAngle   = 90
	penDownAngle = 10
	settleTime   = 300 * time.Millisecond
)

// bankDriver energizes two 4-winding banks directly from GPIO.
type bankDriver struct {
	banks [2][4]machine.Pin
}

func newBankDriver(left, right [4]machine.Pin) *bankDriver {
	d := &bankDriver{banks: [2][4]machine.Pin{left, right}}
	for _, bank := range d.banks {
		for _, pin := range bank {
			pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
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

// servoLift swings the pen arm between two fixed angles.
type servoLift struct {
	s        servo.Servo
	up, down int
}

func (l *servoLift) Raise() {
	l.s.SetAngle(l.up)
	time.Sleep(settleTime)
}

func (l *servoLift) Lower() {
	l.s.SetAngle(l.down)
	time.Sleep(settleTime)
}

func main() {
	driver := newBankDriver(
		[4]machine.Pin{machine.GP2, machine.GP3, machine.GP4, machine.GP5},
		[4]machine.Pin{machine.GP6, machine.GP7, machine.GP8, machine.GP9},
	)

	// GP15 sits on PWM slice 7.
	s, err := servo.New(machine.PWM7, machine.GP15)
	if err != nil {
		for {
			// No servo, no plotter; blink would need another pin budget.
			time.Sleep(time.Second)
		}
	}
	lift := &servoLift{s: s, up: penUpAngle, down: penDownAngle}

	calib := motion.NewCalibration()
	planner := motion.NewPlanner()
	exec := motion.NewExecutor(driver, calib, motion.DefaultStepsPerRev, motion.DefaultStepDelay, nil)
	bot := plotter.New(planner, exec, calib, lift, machine.Serial)

	lift.Raise()

	// One command line at a time, processed to completion before the
	// next byte is consumed. USB buffers the rest.
	line := make([]byte, 0, gcode.MaxLine+1)
	for {
		b, err := machine.Serial.ReadByte()
		if err != nil {
			time.Sleep(time.Millisecond)
			continue
		}
		switch b {
		case '\n', '\r':
			if len(line) > 0 {
				bot.ProcessLine(line)
				line = line[:0]
			}
		default:
			// Keep one byte past the limit so the dispatcher reports
			// the overflow; everything further is dropped.
			if len(line) <= gcode.MaxLine {
				line = append(line, b)
			}
		}
	}
}
