package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sendRequest(t *testing.T, s *Server, method string, id int, params any) jsonrpcResponse {
	t.Helper()

	req := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		req["params"] = params
	}

	reqBytes, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	reqBytes = append(reqBytes, '\n')

	var output bytes.Buffer
	s.input = bytes.NewReader(reqBytes)
	s.output = &output

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var resp jsonrpcResponse
	if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling response %q: %v", output.String(), err)
	}
	return resp
}

// callTool calls a tool and returns the text of its first content block.
func callTool(t *testing.T, s *Server, name string, args map[string]any) (string, bool) {
	t.Helper()
	resp := sendRequest(t, s, "tools/call", 1, map[string]any{"name": name, "arguments": args})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	result := resp.Result.(map[string]any)
	content := result["content"].([]any)
	if len(content) == 0 {
		t.Fatal("empty content")
	}
	isError, _ := result["isError"].(bool)
	return content[0].(map[string]any)["text"].(string), isError
}

func newTestServer(opts Options) *Server {
	s := NewServerWithIO(nil, nil)
	RegisterDefaultTools(s, opts)
	RegisterDefaultResources(s)
	return s
}

var testDataset = map[string]any{
	"teachers": []any{
		map[string]any{"id": "t1", "name": "Jane Doe", "subject": "Math"},
		map[string]any{"id": "t2", "name": "John Roe", "subject": "Physics"},
	},
	"slots": []any{
		map[string]any{"teacherId": "t1", "day": "الأحد", "period": 1, "grade": 10, "section": 1},
		map[string]any{"teacherId": "t2", "day": "الاثنين", "period": 3, "grade": 10, "section": 2},
	},
	"sections": map[string]any{"10": []any{1, 2}},
}

func TestServerInitialize(t *testing.T) {
	s := newTestServer(Options{})

	resp := sendRequest(t, s, "initialize", 1, map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "1.0"},
	})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}

	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatal("result is not a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Fatalf("unexpected protocol version: %v", result["protocolVersion"])
	}
	serverInfo, ok := result["serverInfo"].(map[string]any)
	if !ok {
		t.Fatal("missing serverInfo")
	}
	if serverInfo["name"] != "schedpdf-mcp" {
		t.Fatalf("unexpected server name: %v", serverInfo["name"])
	}
}

func TestServerToolsListSorted(t *testing.T) {
	s := newTestServer(Options{})

	resp := sendRequest(t, s, "tools/list", 2, nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}

	tools := resp.Result.(map[string]any)["tools"].([]any)
	var names []string
	for _, tool := range tools {
		tm := tool.(map[string]any)
		names = append(names, tm["name"].(string))
		if _, ok := tm["inputSchema"].(map[string]any); !ok {
			t.Errorf("tool %v has no input schema", tm["name"])
		}
	}

	want := []string{
		"check_style",
		"export_all_classes",
		"export_all_teachers",
		"export_class_schedule",
		"export_teacher_schedule",
		"list_fonts",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("tools = %v, want %v", names, want)
	}
}

func TestServerResourcesList(t *testing.T) {
	s := newTestServer(Options{})

	resp := sendRequest(t, s, "resources/list", 3, nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}

	resources := resp.Result.(map[string]any)["resources"].([]any)
	if len(resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(resources))
	}
	if uri := resources[0].(map[string]any)["uri"]; uri != "schedpdf://fonts" {
		t.Fatalf("first resource = %v", uri)
	}
}

func TestServerReadDefaultStyle(t *testing.T) {
	s := newTestServer(Options{})

	resp := sendRequest(t, s, "resources/read", 4, map[string]any{"uri": "schedpdf://style/default"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
	contents := resp.Result.(map[string]any)["contents"].([]any)
	text := contents[0].(map[string]any)["text"].(string)
	for _, want := range []string{"theme = \"#428bca\"", "[header]", "Vazirmatn"} {
		if !strings.Contains(text, want) {
			t.Errorf("default style missing %q:\n%s", want, text)
		}
	}

	resp = sendRequest(t, s, "resources/read", 5, map[string]any{"uri": "schedpdf://nope"})
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Fatalf("expected invalid params error, got %+v", resp.Error)
	}
}

func TestServerPing(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	if resp := sendRequest(t, s, "ping", 4, nil); resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error.Message)
	}
}

func TestServerUnknownMethod(t *testing.T) {
	s := NewServerWithIO(nil, nil)

	resp := sendRequest(t, s, "nonexistent/method", 5, nil)
	if resp.Error == nil {
		t.Fatal("expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Fatalf("expected error code -32601, got %d", resp.Error.Code)
	}
}

func TestServerUnknownTool(t *testing.T) {
	s := newTestServer(Options{})

	resp := sendRequest(t, s, "tools/call", 6, map[string]any{
		"name":      "nonexistent_tool",
		"arguments": map[string]any{},
	})
	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestExportTeacherInline(t *testing.T) {
	s := newTestServer(Options{})

	text, isError := callTool(t, s, "export_teacher_schedule", map[string]any{
		"dataset_json": testDataset,
		"teacher_id":   "t1",
		"labels":       "en",
	})
	if isError {
		t.Fatalf("tool failed: %s", text)
	}

	var sum exportSummary
	if err := json.Unmarshal([]byte(text), &sum); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if sum.FileName != "schedule_Jane_Doe.pdf" || sum.Pages != 1 || sum.Path != "" {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	pdf, err := base64.StdEncoding.DecodeString(sum.PDFBase64)
	if err != nil {
		t.Fatalf("decoding pdf: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("not a PDF: %q", pdf[:min(len(pdf), 16)])
	}
}

func TestExportAllClassesToDir(t *testing.T) {
	dir := t.TempDir()
	s := newTestServer(Options{})

	text, isError := callTool(t, s, "export_all_classes", map[string]any{
		"dataset_json":       testDataset,
		"output_dir":         dir,
		"show_teacher_names": true,
		"page_numbers":       true,
	})
	if isError {
		t.Fatalf("tool failed: %s", text)
	}

	var sum exportSummary
	if err := json.Unmarshal([]byte(text), &sum); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if sum.Pages != 2 {
		t.Fatalf("pages = %d, want 2", sum.Pages)
	}
	if sum.PDFBase64 != "" {
		t.Fatal("inline pdf returned alongside a file")
	}
	if sum.Path != filepath.Join(dir, sum.FileName) {
		t.Fatalf("path = %q", sum.Path)
	}
	if _, err := os.Stat(sum.Path); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestExportErrors(t *testing.T) {
	s := newTestServer(Options{})

	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"no dataset", "export_all_teachers", map[string]any{}, "dataset"},
		{"unknown teacher", "export_teacher_schedule", map[string]any{"dataset_json": testDataset, "teacher_id": "zz"}, "no such teacher"},
		{"fractional grade", "export_class_schedule", map[string]any{"dataset_json": testDataset, "grade": 10.5, "section": 1}, "integer"},
		{"bad labels", "export_all_teachers", map[string]any{"dataset_json": testDataset, "labels": "fr"}, "labels"},
		{"missing style", "export_all_teachers", map[string]any{"dataset_json": testDataset, "style": "/nonexistent/style.toml"}, "preset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isError := callTool(t, s, tt.tool, tt.args)
			if !isError {
				t.Fatalf("expected tool error, got %s", text)
			}
			if !strings.Contains(text, tt.want) {
				t.Fatalf("error %q does not mention %q", text, tt.want)
			}
		})
	}
}

func TestCheckStyle(t *testing.T) {
	s := newTestServer(Options{})

	text, isError := callTool(t, s, "check_style", map[string]any{
		"preset": "theme = \"#112233\"\n[day]\nsize = 14\n",
	})
	if isError {
		t.Fatalf("tool failed: %s", text)
	}
	if !strings.Contains(text, "#112233") || !strings.Contains(text, "size = 14") {
		t.Fatalf("normalised preset missing values:\n%s", text)
	}

	text, isError = callTool(t, s, "check_style", map[string]any{
		"preset": "[content]\nsize = 40\n",
	})
	if !isError || !strings.Contains(text, "font size") {
		t.Fatalf("expected size error, got %q", text)
	}
}

func TestListFonts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Amiri.ttf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newTestServer(Options{FontDir: dir})

	text, _ := callTool(t, s, "list_fonts", map[string]any{})
	var out struct {
		Fonts []fontInfo `json:"fonts"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	for _, f := range out.Fonts {
		if f.Installed != (f.Name == "Amiri") {
			t.Errorf("%s installed = %v", f.Name, f.Installed)
		}
	}
}

func TestServerMultipleRequests(t *testing.T) {
	requests := []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":4,"method":"ping"}`,
	}

	input := strings.Join(requests, "\n") + "\n"
	var output bytes.Buffer

	s := NewServerWithIO(strings.NewReader(input), &output)
	RegisterDefaultTools(s, Options{})
	RegisterDefaultResources(s)

	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 responses, got %d: %s", len(lines), output.String())
	}
	for i, line := range lines {
		var resp jsonrpcResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("response %d: unmarshal error: %v\nline: %s", i, err, line)
		}
		if resp.Error != nil {
			t.Errorf("response %d: unexpected error: %s", i, resp.Error.Message)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var output bytes.Buffer
	s := NewServerWithIO(strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &output)
	if err := s.Run(ctx); err != context.Canceled {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if output.Len() != 0 {
		t.Fatalf("unexpected output %q", output.String())
	}
}

func TestToolAddTool(t *testing.T) {
	s := NewServerWithIO(nil, nil)
	s.AddTool(Tool{
		Name:        "custom_tool",
		Description: "A custom test tool",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		Handler: func(context.Context, map[string]any) (ToolResult, error) {
			return textResult("custom result"), nil
		},
	})

	text, isError := callTool(t, s, "custom_tool", nil)
	if isError || text != "custom result" {
		t.Fatalf("unexpected result %q (isError %v)", text, isError)
	}
}
