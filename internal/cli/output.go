package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LoginResult is what the login command reports
type LoginResult struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// MeResult mirrors the /api/me response
type MeResult struct {
	Username string `json:"username"`
}

// HealthResult mirrors the /api/health response
type HealthResult struct {
	Status string `json:"status"`
}

// Doctor mirrors a doctor in API responses
type Doctor struct {
	ID            int64  `json:"id"`
	DoctorName    string `json:"doctorName"`
	Contact       string `json:"contact"`
	Address       string `json:"address"`
	Timing        string `json:"timing"`
	AvailableDays string `json:"availableDays"`
}

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case LoginResult:
		_, _ = fmt.Fprintf(o.w, "%s (user: %s)\n", v.Message, v.Username)
	case MeResult:
		_, _ = fmt.Fprintf(o.w, "Logged in as %s\n", v.Username)
	case HealthResult:
		_, _ = fmt.Fprintf(o.w, "Server status: %s\n", v.Status)
	case Doctor:
		o.printDoctor(v)
	case []Doctor:
		if len(v) == 0 {
			_, _ = fmt.Fprintln(o.w, "No doctors")
		}
		for _, d := range v {
			o.printDoctor(d)
		}
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printDoctor(d Doctor) {
	_, _ = fmt.Fprintf(o.w, "#%d %s | %s | %s | %s | %s\n",
		d.ID, d.DoctorName, d.Contact, d.Address, d.Timing, d.AvailableDays)
}
