package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"wallpaper-manager/internal/deps"
	"wallpaper-manager/internal/preflight"
)

type doctorReport struct {
	ConfigPath   string             `json:"config_path"`
	ConfigExists bool               `json:"config_exists"`
	Binaries     []deps.Status      `json:"binaries"`
	Checks       []preflight.Result `json:"checks"`
}

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "doctor",
		Short:       "Check external programs and directory access",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationAllowMissing: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			report := doctorReport{
				ConfigPath:   ctx.configPath,
				ConfigExists: ctx.configExists,
				Binaries:     preflight.CheckSystemDeps(cfg),
				Checks:       preflight.RunAll(cmd.Context(), cfg),
			}
			if jsonOutput {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				printDoctorReport(cmd.OutOrStdout(), report)
			}

			failed := len(deps.Missing(report.Binaries)) + preflight.Failed(report.Checks)
			if failed > 0 {
				return fmt.Errorf("doctor: %d check(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}

func printDoctorReport(out io.Writer, report doctorReport) {
	configState := "found"
	if !report.ConfigExists {
		configState = "missing, defaults in use"
	}
	fmt.Fprintf(out, "Config: %s (%s)\n", report.ConfigPath, configState)

	binRows := make([][]string, 0, len(report.Binaries))
	for _, s := range report.Binaries {
		state := "ok"
		detail := s.Resolved
		if !s.Available {
			state = "missing"
			if s.Optional {
				state = "missing (optional)"
			}
			detail = s.Detail
		}
		binRows = append(binRows, []string{s.Name, s.Command, state, detail})
	}
	fmt.Fprintln(out, renderTable([]string{"Program", "Command", "Status", "Detail"}, binRows, nil))

	checkRows := make([][]string, 0, len(report.Checks))
	for _, r := range report.Checks {
		checkRows = append(checkRows, []string{r.Name, passLabel(r.Passed), r.Detail})
	}
	fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, checkRows, nil))
}

func passLabel(passed bool) string {
	if passed {
		return "ok"
	}
	return "failed"
}
