package persistence

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{"time", "setpoint", "position", "output", "integral", "kp", "ki", "kd", "escalated"}

// WriteCsv writes the given samples as CSV, one row per tick
func WriteCsv(w io.Writer, samples []Sample) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, sample := range samples {
		record := []string{
			sample.Time.Format(time.RFC3339Nano),
			formatFloat(sample.Setpoint),
			formatFloat(sample.Position),
			formatFloat(sample.Output),
			formatFloat(sample.Integral),
			formatFloat(sample.Kp),
			formatFloat(sample.Ki),
			formatFloat(sample.Kd),
			strconv.FormatBool(sample.Escalated),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
