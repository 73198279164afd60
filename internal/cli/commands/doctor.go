package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tsinit-dev/tsinit/internal/cli/output"
	"github.com/tsinit-dev/tsinit/internal/scaffold"
)

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Scheme    string                    `json:"scheme"`
	Artifacts []scaffold.ArtifactStatus `json:"artifacts"`
	Missing   int                       `json:"missing"`
	Stale     int                       `json:"stale"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "doctor [directory]",
		Short: "Check the scaffolding state of a project",
		Long: `Inspect a project directory and report which scaffolding artifacts
are present, missing, or diverged, plus the module scheme a re-run
of init would resolve to. Nothing is modified.

Output adapts to environment:
  - Terminal: styled table
  - Piped/Scripted: markdown
  - JSON: machine-readable format`,
		Example: `  # Check the current directory
  tsinit doctor

  # Output as JSON
  tsinit doctor --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runDoctor(cmd, dir, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// parseFormat validates a doctor --format value.
func parseFormat(s string) (output.Mode, error) {
	switch m := output.Mode(s); m {
	case output.ModeText, output.ModeMarkdown, output.ModeJSON:
		return m, nil
	}
	return "", fmt.Errorf("invalid output format %q (expected text, markdown, or json)", s)
}

func runDoctor(cmd *cobra.Command, dir, format string) error {
	r := getRenderer(cmd)
	if format != "" {
		mode, err := parseFormat(format)
		if err != nil {
			return err
		}
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	}

	statuses, sch, err := scaffold.Inspect(dir)
	if err != nil {
		return fmt.Errorf("failed to inspect project: %w", err)
	}

	out := &DoctorOutput{Scheme: string(sch), Artifacts: statuses}
	for _, st := range statuses {
		switch st.State {
		case scaffold.StateMissing:
			out.Missing++
		case scaffold.StateStale:
			out.Stale++
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		renderDoctorMarkdown(r, out)
	default:
		renderDoctorText(r, out)
	}
	return nil
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("Project Scaffolding Report"))
	r.Println("")
	r.Printf("Module scheme: %s\n", styles.Bold.Render(out.Scheme))
	r.Println("")

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Artifact", "State", "Detail"})
	for _, st := range out.Artifacts {
		state := st.State
		switch st.State {
		case scaffold.StateOK:
			state = styles.Success.Render(st.State)
		case scaffold.StateMissing:
			state = styles.Error.Render(st.State)
		case scaffold.StateStale:
			state = styles.Warning.Render(st.State)
		}
		t.AppendRow(table.Row{st.Name, state, st.Detail})
	}
	t.SetStyle(table.StyleLight)
	r.Println(t.Render())
	r.Println("")

	if out.Missing == 0 && out.Stale == 0 {
		r.Success("All scaffolding artifacts are in place")
		return
	}
	r.Warning(fmt.Sprintf("%d missing, %d stale. Run 'tsinit init' to converge.", out.Missing, out.Stale))
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println("# Project Scaffolding Report")
	r.Println("")
	r.Printf("Module scheme: **%s**\n", out.Scheme)
	r.Println("")

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Artifact", "State", "Detail"})
	for _, st := range out.Artifacts {
		t.AppendRow(table.Row{st.Name, st.State, st.Detail})
	}
	r.Println(t.RenderMarkdown())
	r.Println("")

	if out.Missing > 0 || out.Stale > 0 {
		r.Printf("%d missing, %d stale. Run `tsinit init` to converge.\n", out.Missing, out.Stale)
	}
}
