package cli

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jadwal/schedpdf/errors"
	"github.com/jadwal/schedpdf/fontload"
	"github.com/jadwal/schedpdf/style"
)

const fetchTimeout = 2 * time.Minute

func (c *CLI) fontsCommand() *cobra.Command {
	var fontDir string
	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "List, download and check fonts",
	}
	cmd.PersistentFlags().StringVar(&fontDir, "font-dir", os.Getenv(envFontDir), "directory holding <Font>.ttf files (env "+envFontDir+")")

	cmd.AddCommand(c.fontsListCommand(&fontDir))
	cmd.AddCommand(c.fontsFetchCommand(&fontDir))
	cmd.AddCommand(c.fontsCheckCommand())
	return cmd
}

func (c *CLI) fontsListCommand(fontDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the font catalog",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLABEL\tINSTALLED")
			for _, f := range style.Catalog {
				installed := "-"
				if _, ok := fontload.Locate(*fontDir, f.Name); ok {
					installed = iconSuccess
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Label, installed)
			}
			tw.Flush()
			if *fontDir == "" {
				printDetail(c.Out, "no font directory set, exports use the %s fallback", fontload.FallbackName)
			}
		},
	}
}

func (c *CLI) fontsFetchCommand(fontDir *string) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "fetch [name...]",
		Short: "Download catalog fonts into the font directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *fontDir == "" {
				return errors.Validation("font-dir", nil, "required, or set %s", envFontDir)
			}
			var fonts []style.CatalogFont
			if all {
				fonts = style.Catalog
			}
			for _, name := range args {
				f, ok := style.LookupFont(name)
				if !ok {
					return errors.Validation("font", name, "not in the font catalog")
				}
				fonts = append(fonts, f)
			}
			if len(fonts) == 0 {
				return fmt.Errorf("name a font or pass --all")
			}
			if err := os.MkdirAll(*fontDir, 0o755); err != nil {
				return err
			}

			client := &http.Client{Timeout: fetchTimeout}
			for _, f := range fonts {
				path, err := fontload.Fetch(cmd.Context(), client, f, *fontDir)
				if err != nil {
					return err
				}
				printSuccess(c.Out, "%s → %s", f.Name, path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "download every catalog font")
	return cmd
}

func (c *CLI) fontsCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.ttf>",
		Short: "Check that a file is a usable TrueType font",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := fontload.ReadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := fontload.Decode(cf)
			if err != nil {
				return err
			}
			printSuccess(c.Out, "%s is usable as %q %s", args[0], cf.Name,
				styleDim.Render(fmt.Sprintf("(%d bytes)", len(data))))
			return nil
		},
	}
}
