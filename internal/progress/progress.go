// Package progress prints per-point status lines to the console while a
// sweep runs. On a real terminal it overwrites the current line with a
// carriage return; redirected to a file or pipe it falls back to one line
// per update so logs stay readable.
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/bersim-project/bersim/internal/driver"
)

// Printer implements driver.Observer, printing a status line after every
// frame's counters update. It also exposes Done, called once per SNR point
// with the final BerResult.
type Printer struct {
	w     io.Writer
	isTTY bool
}

// New constructs a Printer writing to w, detecting at construction time
// whether w is connected to a terminal (fd-backed writers only; any other
// io.Writer is treated as non-interactive).
func New(w io.Writer) *Printer {
	return &Printer{w: w, isTTY: isTerminal(w)}
}

// isTerminal reports whether w is a terminal by issuing a TCGETS ioctl on
// its file descriptor, following the same probe x/sys/unix callers use
// elsewhere in the ecosystem for console detection.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	_, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)
	return err == nil
}

// Observe implements driver.Observer.
func (p *Printer) Observe(snrDB float64, bitsAfter, errsAfter uint64) {
	ber := float64(0)
	if bitsAfter > 0 {
		ber = float64(errsAfter) / float64(bitsAfter)
	}
	line := fmt.Sprintf("SNR(dB)=%.2f BER=%.3e bits=%d errors=%d", snrDB, ber, bitsAfter, errsAfter)
	if p.isTTY {
		fmt.Fprintf(p.w, "\r%s", line)
	} else {
		fmt.Fprintln(p.w, line)
	}
}

// Done reports the finished BerResult for one SNR point, always on its own
// line so the point's settled value survives any prior in-place updates.
func (p *Printer) Done(r driver.BerResult) {
	if p.isTTY {
		fmt.Fprintf(p.w, "\rSNR(dB)=%.2f BER=%.6e bits=%d errors=%d [done]\n", r.SNRdB, r.BER, r.Bits, r.Errs)
	} else {
		fmt.Fprintf(p.w, "SNR(dB)=%.2f BER=%.6e bits=%d errors=%d [done]\n", r.SNRdB, r.BER, r.Bits, r.Errs)
	}
}
