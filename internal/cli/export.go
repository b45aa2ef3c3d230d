package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jadwal/schedpdf"
	"github.com/jadwal/schedpdf/errors"
	"github.com/jadwal/schedpdf/fontload"
	"github.com/jadwal/schedpdf/pageops"
	"github.com/jadwal/schedpdf/schedule"
	"github.com/jadwal/schedpdf/style"
)

// exportOpts holds the flags shared by the export commands.
type exportOpts struct {
	data         string // dataset file, .json or .yaml
	style        string // TOML preset, default style when empty
	out          string // output directory
	fontDir      string // directory of named fonts
	labels       string // ar or en
	ltr          bool   // left-to-right column order
	teacherNames bool   // teacher names in class cells
	letterhead   string // PDF whose page is drawn under every page
	letterPage   int
	pageNumbers  bool
	pageFormat   string
	watermark    string
	qr           string // QR content template
}

func (o *exportOpts) register(cmd *cobra.Command, classes bool) {
	f := cmd.Flags()
	f.StringVarP(&o.data, "data", "d", "", "dataset file (.json, .yaml)")
	f.StringVarP(&o.style, "style", "s", "", "TOML style preset (default style if omitted)")
	f.StringVarP(&o.out, "out", "o", ".", "output directory")
	f.StringVar(&o.fontDir, "font-dir", os.Getenv(envFontDir), "directory holding <Font>.ttf files (env "+envFontDir+")")
	f.StringVar(&o.labels, "labels", "ar", "label language: ar, en")
	f.BoolVar(&o.ltr, "ltr", false, "lay out columns left to right")
	if classes {
		f.BoolVar(&o.teacherNames, "teacher-names", false, "print teacher names under subjects")
	}
	f.StringVar(&o.letterhead, "letterhead", "", "PDF to use as page background")
	f.IntVar(&o.letterPage, "letterhead-page", 1, "page of the letterhead PDF to use")
	f.BoolVar(&o.pageNumbers, "page-numbers", false, "print page numbers")
	f.StringVar(&o.pageFormat, "page-format", "{page} / {pages}", "page number format")
	f.StringVar(&o.watermark, "watermark", "", "watermark text")
	f.StringVar(&o.qr, "qr", "", "QR code content template ({doc}, {subject}, {page})")
	cmd.MarkFlagRequired("data")
}

func (o *exportOpts) exporter() (*schedpdf.Exporter, error) {
	opts := []schedpdf.Option{schedpdf.WithFontDir(o.fontDir), schedpdf.WithCreator(appName)}

	switch o.labels {
	case "ar":
	case "en":
		opts = append(opts, schedpdf.WithLabels(schedpdf.EnglishLabels()))
	default:
		return nil, errors.Validation("labels", o.labels, "want ar or en")
	}
	if o.ltr {
		opts = append(opts, schedpdf.WithDirection(schedpdf.LeftToRight))
	}
	if o.letterhead != "" {
		opts = append(opts, schedpdf.WithLetterhead(o.letterhead, o.letterPage))
	}
	if o.pageNumbers {
		opts = append(opts, schedpdf.WithPageNumbers(pageops.PageNumberStyle{Format: o.pageFormat}))
	}
	if o.watermark != "" {
		opts = append(opts, schedpdf.WithWatermark(pageops.TextWatermark{Text: o.watermark}))
	}
	if o.qr != "" {
		opts = append(opts, schedpdf.WithQRCode(o.qr))
	}
	return schedpdf.New(opts...), nil
}

// session is everything an export command needs once flags are parsed.
type session struct {
	exp *schedpdf.Exporter
	ds  *schedule.Dataset
	cfg *style.Config
}

func (c *CLI) open(ctx context.Context, o *exportOpts) (*session, error) {
	exp, err := o.exporter()
	if err != nil {
		return nil, err
	}
	ds, err := schedule.LoadFile(o.data)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("dataset loaded", "teachers", len(ds.Teachers), "slots", len(ds.Slots))

	s := &session{exp: exp, ds: ds}
	if o.style != "" {
		cfg, err := loadPreset(ctx, o.style)
		if err != nil {
			return nil, err
		}
		s.cfg = &cfg
	}
	return s, nil
}

func loadPreset(ctx context.Context, path string) (style.Config, error) {
	return style.LoadPresetFile(path, func(p string) (style.CustomFont, error) {
		return fontload.ReadFile(ctx, p)
	})
}

// save writes one export to dir and reports it.
func (c *CLI) save(dir string, export func(io.Writer) (*schedpdf.Result, error)) error {
	path, res, err := schedpdf.Save(dir, export)
	if err != nil {
		return err
	}
	c.report(path, res)
	return nil
}

func (c *CLI) report(path string, res *schedpdf.Result) {
	printSuccess(c.Out, "Wrote %s %s", path, styleDim.Render(fmt.Sprintf("(%d pages)", res.Pages)))
	for _, w := range res.Warnings {
		printWarning(c.Out, "%v", w)
	}
}

func (c *CLI) teacherCommand() *cobra.Command {
	var opts exportOpts
	cmd := &cobra.Command{
		Use:   "teacher <id>",
		Short: "Export the timetable of one teacher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.open(ctx, &opts)
			if err != nil {
				return err
			}
			t, ok := s.ds.Teacher(args[0])
			if !ok {
				return errors.Validation("teacher", args[0], "no such teacher in %s", opts.data)
			}
			return c.save(opts.out, func(w io.Writer) (*schedpdf.Result, error) {
				return s.exp.ExportTeacherSchedule(ctx, w, t, s.ds.TeacherSlots(t.ID), s.cfg)
			})
		},
	}
	opts.register(cmd, false)
	return cmd
}

func (c *CLI) classCommand() *cobra.Command {
	var opts exportOpts
	cmd := &cobra.Command{
		Use:   "class <grade> <section>",
		Short: "Export the timetable of one class",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			grade, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Validation("grade", args[0], "must be a number")
			}
			section, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Validation("section", args[1], "must be a number")
			}

			ctx := cmd.Context()
			s, err := c.open(ctx, &opts)
			if err != nil {
				return err
			}
			key := schedule.ClassKey{Grade: grade, Section: section}
			slots, ok := s.ds.ClassSlots(key)
			if !ok {
				c.Logger.Warn("slots name unknown teachers", "class", key.String())
			}
			return c.save(opts.out, func(w io.Writer) (*schedpdf.Result, error) {
				return s.exp.ExportClassSchedule(ctx, w, grade, section, slots, opts.teacherNames, s.cfg)
			})
		},
	}
	opts.register(cmd, true)
	return cmd
}

func (c *CLI) teachersCommand() *cobra.Command {
	var (
		opts  exportOpts
		split bool
		jobs  int
	)
	cmd := &cobra.Command{
		Use:   "teachers",
		Short: "Export the timetables of all teachers",
		Long:  "Export the timetables of all teachers, one page each, into a single PDF or with --split into one PDF per teacher.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.open(ctx, &opts)
			if err != nil {
				return err
			}
			if !split {
				return c.save(opts.out, func(w io.Writer) (*schedpdf.Result, error) {
					return s.exp.ExportAllTeachers(ctx, w, s.ds.Teachers, s.ds.Slots, s.cfg)
				})
			}
			return c.splitTeachers(ctx, s, opts.out, jobs)
		},
	}
	opts.register(cmd, false)
	cmd.Flags().BoolVar(&split, "split", false, "write one file per teacher")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "concurrent exports with --split")
	return cmd
}

// splitTeachers exports each teacher to its own file, at most jobs at a
// time. The first failure cancels the exports not yet finished. Teachers
// sharing a name are told apart by their ID in the file name.
func (c *CLI) splitTeachers(ctx context.Context, s *session, dir string, jobs int) error {
	if len(s.ds.Teachers) == 0 {
		return schedpdf.ErrNothingToExport
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	type written struct {
		path string
		res  *schedpdf.Result
	}
	names := schedpdf.TeacherFileNames(s.exp.Labels(), s.ds.Teachers)
	done := make([]written, len(s.ds.Teachers))
	for i, t := range s.ds.Teachers {
		g.Go(func() error {
			path, res, err := schedpdf.Save(dir, func(w io.Writer) (*schedpdf.Result, error) {
				res, err := s.exp.ExportTeacherSchedule(ctx, w, t, s.ds.TeacherSlots(t.ID), s.cfg)
				if err == nil {
					res.FileName = names[i]
				}
				return res, err
			})
			if err != nil {
				return fmt.Errorf("teacher %s: %w", t.ID, err)
			}
			done[i] = written{path, res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, w := range done {
		c.report(w.path, w.res)
	}
	printInfo(c.Out, "%s teacher timetables", styleNumber.Render(strconv.Itoa(len(done))))
	return nil
}

func (c *CLI) classesCommand() *cobra.Command {
	var opts exportOpts
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Export the timetables of all classes",
		Long:  "Export the timetables of all classes into a single PDF, one page per class. Classes come from the dataset's sections, or grades 10 to 12 with sections 1 to 7.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.open(ctx, &opts)
			if err != nil {
				return err
			}
			return c.save(opts.out, func(w io.Writer) (*schedpdf.Result, error) {
				return s.exp.ExportAllClasses(ctx, w, s.ds.Slots, s.ds.Teachers, opts.teacherNames, s.cfg, s.ds.SectionsOrDefault())
			})
		},
	}
	opts.register(cmd, true)
	return cmd
}
