package render

import "golang.org/x/sys/unix"

// QueryWidth returns the terminal column count for fd via TIOCGWINSZ.
// Raw-mode setup and capability probing are left to the caller; this is
// the one terminal-ioctl call that belongs inside the module itself, since
// wrap math needs a column count to work with and the caller may not have
// one handy.
func QueryWidth(fd int) (int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, err
	}
	return int(ws.Col), nil
}
