package cli

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jadwal/schedpdf/style"
)

const defaultPresetFile = "schedpdf-style.toml"

func (c *CLI) styleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style",
		Short: "Manage TOML style presets",
	}
	cmd.AddCommand(c.styleInitCommand())
	cmd.AddCommand(c.styleShowCommand())
	cmd.AddCommand(c.styleCheckCommand())
	return cmd
}

func (c *CLI) styleInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the default style as a preset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultPresetFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists, use --force to overwrite", path)
			}

			var buf bytes.Buffer
			if err := style.WritePreset(&buf, style.Default()); err != nil {
				return err
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return err
			}
			printSuccess(c.Out, "Wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) styleShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print a preset, or the default style, with colour swatches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := style.Default()
			title := "default style"
			if len(args) == 1 {
				var err error
				if cfg, err = loadPreset(cmd.Context(), args[0]); err != nil {
					return err
				}
				title = args[0]
			}
			c.printStyle(title, cfg)
			return nil
		},
	}
}

func (c *CLI) printStyle(title string, cfg style.Config) {
	fmt.Fprintln(c.Out, styleTitle.Render(title))
	fmt.Fprintf(c.Out, "theme    %s\n", swatch(cfg.Theme))
	fmt.Fprintf(c.Out, "uniform  %v\n\n", cfg.Uniform)

	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tFONT\tSIZE\tCOLOR")
	for _, r := range style.Roles() {
		rs := cfg.Role(r)
		font := cfg.Font(r)
		name := font.Name
		if font.IsCustom() {
			name += " (custom)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r, name, rs.Size, swatch(rs.Color))
	}
	tw.Flush()
}

func (c *CLI) styleCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadPreset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSuccess(c.Out, "%s is valid", args[0])
			for _, r := range style.Roles() {
				if f := cfg.Font(r); !f.IsCustom() {
					if _, ok := style.LookupFont(f.Name); !ok {
						printWarning(c.Out, "%s font %q is not in the font catalog", r, f.Name)
					}
				}
			}
			return nil
		},
	}
}
