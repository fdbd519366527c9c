package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends raw ESC/POS bytes to a thermal printer.
type Printer interface {
	Print(data []byte) error
	IsConnected() bool
}

// Kind values accepted by New.
const (
	KindUSB     = "usb"
	KindNetwork = "network"
	KindNone    = "none"
)

// deviceFile writes to a character device such as /dev/usb/lp0, opened per job.
type deviceFile struct {
	path string
}

func (p *deviceFile) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *deviceFile) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// socket dials a raw TCP port (usually 9100) once per job.
type socket struct {
	address     string
	dialTimeout time.Duration
}

func (p *socket) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *socket) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type disabled struct{}

func (disabled) Print([]byte) error { return nil }
func (disabled) IsConnected() bool  { return false }

// Disabled returns a printer that accepts and discards every job.
func Disabled() Printer {
	return disabled{}
}

// New builds the printer selected by kind.
func New(kind, usbPath, address string) (Printer, error) {
	switch kind {
	case KindUSB:
		if usbPath == "" {
			return nil, fmt.Errorf("printer: usb path is required for %q printers", kind)
		}
		return &deviceFile{path: usbPath}, nil
	case KindNetwork:
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for %q printers", kind)
		}
		return &socket{address: address, dialTimeout: 5 * time.Second}, nil
	case KindNone, "":
		return Disabled(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", kind)
	}
}
