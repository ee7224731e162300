// Package term puts a terminal into raw mode for the demo binary's direct
// byte-at-a-time input, using per-platform ioctl request constants so it
// builds correctly on both Linux and Darwin.
package term

import (
	"os"

	"golang.org/x/sys/unix"
)

// Raw holds the terminal's original mode so it can be restored.
type Raw struct {
	fd       int
	original unix.Termios
}

// Enable puts f's terminal into raw mode (no echo, no line buffering, no
// signal generation from Ctrl-C/Ctrl-Z) and returns a Raw that can restore
// the original mode.
func Enable(f *os.File) (*Raw, error) {
	fd := int(f.Fd())
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}
	original := *termios

	raw := original
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, err
	}
	return &Raw{fd: fd, original: original}, nil
}

// Restore puts the terminal back into the mode it was in before Enable.
func (r *Raw) Restore() error {
	return unix.IoctlSetTermios(r.fd, ioctlSetTermios, &r.original)
}
