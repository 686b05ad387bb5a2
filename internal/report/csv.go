package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/bersim-project/bersim/internal/driver"
)

// csvHeader is the mandated output header; the column order and names are
// the on-disk contract and must never change.
var csvHeader = []string{"snr_db", "ber", "num_bits", "num_errors", "ci_low", "ci_high"}

// WriteCSV writes the sweep results table to path: the fixed header
// followed by one record per SNR point in sweep order, numeric fields
// formatted with six fractional digits.
func WriteCSV(path string, results []driver.BerResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			formatFixed(r.SNRdB),
			formatFixed(r.BER),
			fmt.Sprintf("%d", r.Bits),
			fmt.Sprintf("%d", r.Errs),
			formatFixed(r.CiLo),
			formatFixed(r.CiHi),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFixed(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
