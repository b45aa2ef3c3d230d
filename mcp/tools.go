package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jadwal/schedpdf"
	"github.com/jadwal/schedpdf/errors"
	"github.com/jadwal/schedpdf/fontload"
	"github.com/jadwal/schedpdf/logging"
	"github.com/jadwal/schedpdf/pageops"
	"github.com/jadwal/schedpdf/schedule"
	"github.com/jadwal/schedpdf/style"
)

// Options configure the built-in tools.
type Options struct {
	// FontDir is searched for named fonts as <Name>.ttf.
	FontDir string
	// OutputDir receives documents when a call gives no output_dir. When
	// both are empty the document is returned inline as base64.
	OutputDir string
}

type toolset struct {
	opts Options
}

// RegisterDefaultTools adds the export, font and style tools to the server.
func RegisterDefaultTools(s *Server, opts Options) {
	ts := &toolset{opts: opts}
	s.AddTool(ts.exportTeacherTool())
	s.AddTool(ts.exportClassTool())
	s.AddTool(ts.exportAllTeachersTool())
	s.AddTool(ts.exportAllClassesTool())
	s.AddTool(ts.listFontsTool())
	s.AddTool(checkStyleTool())
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

// exportSchema returns the input schema shared by the export tools plus
// extra properties.
func exportSchema(extra map[string]any, required ...string) map[string]any {
	props := map[string]any{
		"dataset":      prop("string", "Path to a JSON or YAML dataset with teachers, slots and optional sections"),
		"dataset_json": prop("object", "Inline dataset, used instead of dataset"),
		"style":        prop("string", "Optional path to a TOML style preset"),
		"output_dir":   prop("string", "Directory to write the PDF to. If omitted, the PDF is returned as base64"),
		"labels": map[string]any{
			"type":        "string",
			"enum":        []string{"ar", "en"},
			"description": "Label language, default ar",
		},
		"direction": map[string]any{
			"type":        "string",
			"enum":        []string{"rtl", "ltr"},
			"description": "Column order, default rtl",
		},
		"page_numbers": prop("boolean", "Print page numbers in the footer"),
		"watermark":    prop("string", "Optional watermark text"),
	}
	for k, v := range extra {
		props[k] = v
	}
	schema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func (ts *toolset) exportTeacherTool() Tool {
	return Tool{
		Name:        "export_teacher_schedule",
		Description: "Export the weekly timetable of one teacher as a one-page PDF.",
		InputSchema: exportSchema(map[string]any{
			"teacher_id": prop("string", "ID of the teacher in the dataset"),
		}, "teacher_id"),
		Handler: ts.export(func(ctx context.Context, exp *schedpdf.Exporter, w io.Writer, ds *schedule.Dataset, cfg *style.Config, args map[string]any) (*schedpdf.Result, error) {
			id, err := stringArg(args, "teacher_id")
			if err != nil {
				return nil, err
			}
			t, ok := ds.Teacher(id)
			if !ok {
				return nil, errors.Validation("teacher_id", id, "no such teacher in dataset")
			}
			return exp.ExportTeacherSchedule(ctx, w, t, ds.TeacherSlots(id), cfg)
		}),
	}
}

func (ts *toolset) exportClassTool() Tool {
	return Tool{
		Name:        "export_class_schedule",
		Description: "Export the weekly timetable of one class (grade and section) as a one-page PDF.",
		InputSchema: exportSchema(map[string]any{
			"grade":              prop("integer", "Grade, e.g. 10"),
			"section":            prop("integer", "Section within the grade, e.g. 3"),
			"show_teacher_names": prop("boolean", "Print the teacher name under each subject"),
		}, "grade", "section"),
		Handler: ts.export(func(ctx context.Context, exp *schedpdf.Exporter, w io.Writer, ds *schedule.Dataset, cfg *style.Config, args map[string]any) (*schedpdf.Result, error) {
			grade, err := intArg(args, "grade")
			if err != nil {
				return nil, err
			}
			section, err := intArg(args, "section")
			if err != nil {
				return nil, err
			}
			show, err := boolArg(args, "show_teacher_names")
			if err != nil {
				return nil, err
			}
			key := schedule.ClassKey{Grade: grade, Section: section}
			slots, ok := ds.ClassSlots(key)
			if !ok {
				logging.Logger().Warn("class slots name unknown teachers", "class", key.String())
			}
			return exp.ExportClassSchedule(ctx, w, grade, section, slots, show, cfg)
		}),
	}
}

func (ts *toolset) exportAllTeachersTool() Tool {
	return Tool{
		Name:        "export_all_teachers",
		Description: "Export one PDF with a page per teacher, in dataset order.",
		InputSchema: exportSchema(nil),
		Handler: ts.export(func(ctx context.Context, exp *schedpdf.Exporter, w io.Writer, ds *schedule.Dataset, cfg *style.Config, _ map[string]any) (*schedpdf.Result, error) {
			return exp.ExportAllTeachers(ctx, w, ds.Teachers, ds.Slots, cfg)
		}),
	}
}

func (ts *toolset) exportAllClassesTool() Tool {
	return Tool{
		Name:        "export_all_classes",
		Description: "Export one PDF with a page per class, ordered by grade then section. Uses the dataset's sections, or grades 10-12 with sections 1-7.",
		InputSchema: exportSchema(map[string]any{
			"show_teacher_names": prop("boolean", "Print the teacher name under each subject"),
		}),
		Handler: ts.export(func(ctx context.Context, exp *schedpdf.Exporter, w io.Writer, ds *schedule.Dataset, cfg *style.Config, args map[string]any) (*schedpdf.Result, error) {
			show, err := boolArg(args, "show_teacher_names")
			if err != nil {
				return nil, err
			}
			return exp.ExportAllClasses(ctx, w, ds.Slots, ds.Teachers, show, cfg, ds.SectionsOrDefault())
		}),
	}
}

type exportFunc func(ctx context.Context, exp *schedpdf.Exporter, w io.Writer, ds *schedule.Dataset, cfg *style.Config, args map[string]any) (*schedpdf.Result, error)

// exportSummary is the JSON text returned by the export tools.
type exportSummary struct {
	FileName   string   `json:"file_name"`
	Path       string   `json:"path,omitempty"`
	Pages      int      `json:"pages"`
	DocumentID string   `json:"document_id"`
	Warnings   []string `json:"warnings,omitempty"`
	PDFBase64  string   `json:"pdf_base64,omitempty"`
}

// export wraps fn with the argument handling shared by the export tools:
// dataset and style loading, exporter options and output.
func (ts *toolset) export(fn exportFunc) ToolHandler {
	return func(ctx context.Context, args map[string]any) (ToolResult, error) {
		ds, err := loadDataset(args)
		if err != nil {
			return ToolResult{}, err
		}
		cfg, err := loadStyle(ctx, args)
		if err != nil {
			return ToolResult{}, err
		}
		exp, err := ts.exporter(args)
		if err != nil {
			return ToolResult{}, err
		}
		dir, err := stringArg(args, "output_dir")
		if err != nil {
			return ToolResult{}, err
		}
		if dir == "" {
			dir = ts.opts.OutputDir
		}

		var sum exportSummary
		var res *schedpdf.Result
		if dir != "" {
			sum.Path, res, err = schedpdf.Save(dir, func(w io.Writer) (*schedpdf.Result, error) {
				return fn(ctx, exp, w, ds, cfg, args)
			})
			if err != nil {
				return ToolResult{}, err
			}
		} else {
			var buf bytes.Buffer
			if res, err = fn(ctx, exp, &buf, ds, cfg, args); err != nil {
				return ToolResult{}, err
			}
			sum.PDFBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
		}

		sum.FileName = res.FileName
		sum.Pages = res.Pages
		sum.DocumentID = res.DocumentID
		for _, w := range res.Warnings {
			sum.Warnings = append(sum.Warnings, w.Error())
		}
		return jsonResult(sum)
	}
}

func (ts *toolset) exporter(args map[string]any) (*schedpdf.Exporter, error) {
	opts := []schedpdf.Option{schedpdf.WithFontDir(ts.opts.FontDir)}

	labels, err := stringArg(args, "labels")
	if err != nil {
		return nil, err
	}
	switch labels {
	case "", "ar":
	case "en":
		opts = append(opts, schedpdf.WithLabels(schedpdf.EnglishLabels()))
	default:
		return nil, errors.Validation("labels", labels, "want ar or en")
	}

	direction, err := stringArg(args, "direction")
	if err != nil {
		return nil, err
	}
	switch direction {
	case "", "rtl":
	case "ltr":
		opts = append(opts, schedpdf.WithDirection(schedpdf.LeftToRight))
	default:
		return nil, errors.Validation("direction", direction, "want rtl or ltr")
	}

	if on, err := boolArg(args, "page_numbers"); err != nil {
		return nil, err
	} else if on {
		opts = append(opts, schedpdf.WithPageNumbers(pageops.PageNumberStyle{}))
	}
	if text, err := stringArg(args, "watermark"); err != nil {
		return nil, err
	} else if text != "" {
		opts = append(opts, schedpdf.WithWatermark(pageops.TextWatermark{Text: text}))
	}
	return schedpdf.New(opts...), nil
}

func loadDataset(args map[string]any) (*schedule.Dataset, error) {
	path, err := stringArg(args, "dataset")
	if err != nil {
		return nil, err
	}
	raw, inline := args["dataset_json"]
	switch {
	case inline && path != "":
		return nil, errors.Validation("dataset", nil, "give either dataset or dataset_json, not both")
	case inline:
		var data []byte
		if s, ok := raw.(string); ok {
			data = []byte(s)
		} else if data, err = json.Marshal(raw); err != nil {
			return nil, fmt.Errorf("encoding dataset_json: %w", err)
		}
		return schedule.Load(bytes.NewReader(data), schedule.JSON)
	case path != "":
		return schedule.LoadFile(path)
	}
	return nil, errors.Validation("dataset", nil, "one of dataset or dataset_json is required")
}

// loadStyle returns nil when no preset is named, selecting the default
// style.
func loadStyle(ctx context.Context, args map[string]any) (*style.Config, error) {
	path, err := stringArg(args, "style")
	if err != nil || path == "" {
		return nil, err
	}
	cfg, err := style.LoadPresetFile(path, func(p string) (style.CustomFont, error) {
		return fontload.ReadFile(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

type fontInfo struct {
	style.CatalogFont
	Installed bool   `json:"installed"`
	Path      string `json:"path,omitempty"`
}

func (ts *toolset) listFontsTool() Tool {
	return Tool{
		Name:        "list_fonts",
		Description: "List the selectable named fonts and whether each is installed in the font directory.",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		Handler: func(context.Context, map[string]any) (ToolResult, error) {
			fonts := make([]fontInfo, 0, len(style.Catalog))
			for _, f := range style.Catalog {
				fi := fontInfo{CatalogFont: f}
				fi.Path, fi.Installed = fontload.Locate(ts.opts.FontDir, f.Name)
				fonts = append(fonts, fi)
			}
			return jsonResult(map[string]any{
				"font_dir": ts.opts.FontDir,
				"fallback": fontload.FallbackName,
				"fonts":    fonts,
			})
		},
	}
}

func checkStyleTool() Tool {
	return Tool{
		Name:        "check_style",
		Description: "Validate a TOML style preset, given as a file path or inline text, and return it in normalised form.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"style":  prop("string", "Path to a TOML style preset"),
				"preset": prop("string", "Inline TOML preset, used instead of style"),
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (ToolResult, error) {
			text, err := stringArg(args, "preset")
			if err != nil {
				return ToolResult{}, err
			}
			var cfg style.Config
			if text != "" {
				cfg, err = style.LoadPreset(strings.NewReader(text))
			} else {
				var c *style.Config
				if c, err = loadStyle(ctx, args); err == nil && c == nil {
					err = errors.Validation("style", nil, "one of style or preset is required")
				} else if c != nil {
					cfg = *c
				}
			}
			if err != nil {
				return ToolResult{}, err
			}

			var buf bytes.Buffer
			if err := style.WritePreset(&buf, cfg); err != nil {
				return ToolResult{}, err
			}
			return textResult("Style is valid.\n\n" + buf.String()), nil
		},
	}
}

func jsonResult(v any) (ToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ToolResult{}, err
	}
	return textResult(string(data)), nil
}

// stringArg returns an optional string argument, "" when absent.
func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Validation(name, v, "must be a string")
	}
	return strings.TrimSpace(s), nil
}

// boolArg returns an optional boolean argument, false when absent.
func boolArg(args map[string]any, name string) (bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.Validation(name, v, "must be a boolean")
	}
	return b, nil
}

// intArg returns a required integer argument. JSON numbers decode as
// float64, so whole floats are accepted.
func intArg(args map[string]any, name string) (int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return 0, errors.Validation(name, nil, "is required")
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, errors.Validation(name, v, "must be an integer")
	}
	return int(f), nil
}
