// Package stream feeds G-code programs to the robot over its serial link,
// one line at a time, paced for the firmware's small line buffer.
package stream

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/tarm/serial"
)

// Port is the byte transport to the robot. The abstraction keeps the
// sender testable against an in-memory pipe.
type Port interface {
	io.ReadWriteCloser
}

// PortConfig holds serial link settings.
type PortConfig struct {
	// Device path, e.g. "/dev/ttyUSB0" or "COM3".
	Device string

	// Baud rate. The reference robot listens at 4800.
	Baud int

	// Read timeout for reply draining (0 = blocking reads).
	ReadTimeout time.Duration
}

type nativePort struct {
	port *serial.Port
}

// Open opens the robot's serial port.
func Open(cfg PortConfig) (Port, error) {
	if cfg.Device == "" {
		return nil, errors.New("serial device required")
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening serial port %s", cfg.Device)
	}
	return &nativePort{port: port}, nil
}

func (p *nativePort) Read(b []byte) (int, error)  { return p.port.Read(b) }
func (p *nativePort) Write(b []byte) (int, error) { return p.port.Write(b) }
func (p *nativePort) Close() error                { return p.port.Close() }
