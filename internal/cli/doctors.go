package cli

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

func newDoctorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Doctor directory commands",
	}

	cmd.AddCommand(newDoctorsListCmd())
	cmd.AddCommand(newDoctorsGetCmd())
	cmd.AddCommand(newDoctorsAddCmd())
	cmd.AddCommand(newDoctorsUpdateCmd())
	cmd.AddCommand(newDoctorsDeleteCmd())

	return cmd
}

// doctorFlags are the fields of a doctor record
type doctorFlags struct {
	name, contact, address, timing, days string
}

func (f *doctorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Doctor name (required)")
	cmd.Flags().StringVar(&f.contact, "contact", "", "Contact number, at least 10 digits (required)")
	cmd.Flags().StringVar(&f.address, "address", "", "Address (required)")
	cmd.Flags().StringVar(&f.timing, "timing", "", "Consulting hours (required)")
	cmd.Flags().StringVar(&f.days, "days", "", "Available days (required)")
}

func (f *doctorFlags) body() map[string]string {
	return map[string]string{
		"doctorName":    f.name,
		"contact":       f.contact,
		"address":       f.address,
		"timing":        f.timing,
		"availableDays": f.days,
	}
}

func parseDoctorID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid doctor id %q", arg)
	}
	return id, nil
}

func newDoctorsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Doctor
			if err := client.GetJSON("/api/doctors", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newDoctorsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDoctorID(args[0])
			if err != nil {
				return err
			}

			var result Doctor
			if err := client.GetJSON(fmt.Sprintf("/api/doctors/%d", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newDoctorsAddCmd() *cobra.Command {
	var f doctorFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Doctor
			if err := client.SendJSON(http.MethodPost, "/api/doctors", f.body(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func newDoctorsUpdateCmd() *cobra.Command {
	var f doctorFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a doctor's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDoctorID(args[0])
			if err != nil {
				return err
			}

			var result Doctor
			if err := client.SendJSON(http.MethodPut, fmt.Sprintf("/api/doctors/%d", id), f.body(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func newDoctorsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDoctorID(args[0])
			if err != nil {
				return err
			}

			if err := client.Delete(fmt.Sprintf("/api/doctors/%d", id)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted doctor %d", id))
			return nil
		},
	}
}
