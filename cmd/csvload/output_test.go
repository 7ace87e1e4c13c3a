package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/csvasset/internal/core"
)

func TestDefaultFormat_NotATerminal(t *testing.T) {
	if got := defaultFormat(&bytes.Buffer{}); got != formatJSON {
		t.Errorf("defaultFormat(buffer) = %q, want %q", got, formatJSON)
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{formatTable, formatJSON, formatYAML} {
		if err := validFormat(f); err != nil {
			t.Errorf("validFormat(%q) = %v", f, err)
		}
	}
	if err := validFormat("xml"); err == nil {
		t.Error("validFormat(xml) should fail")
	}
}

func TestWriteTables(t *testing.T) {
	table := core.Parse("h1,h2\nv1,v2\nv3,v4")

	tests := []struct {
		name    string
		format  string
		results []namedTable
		want    string
	}{
		{
			name:    "single json",
			format:  formatJSON,
			results: []namedTable{{File: "a.csv", Table: table}},
			want: `{
  "headers": [
    "h1",
    "h2"
  ],
  "rows": [
    [
      "v1",
      "v2"
    ],
    [
      "v3",
      "v4"
    ]
  ]
}
`,
		},
		{
			name:    "empty json",
			format:  formatJSON,
			results: []namedTable{{File: "e.csv", Table: core.EmptyTable()}},
			want: `{
  "headers": [],
  "rows": []
}
`,
		},
		{
			name:    "single table",
			format:  formatTable,
			results: []namedTable{{File: "a.csv", Table: table}},
			want:    "h1  h2\n--  --\nv1  v2\nv3  v4\n(2 rows)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeTables(&buf, tt.format, tt.results); err != nil {
				t.Fatalf("writeTables() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("writeTables() =\n%s\nwant\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteTables_MultipleFilesLabelled(t *testing.T) {
	results := []namedTable{
		{File: "a.csv", Table: core.Parse("x\n1")},
		{File: "b.csv", Table: core.Parse("y\n2")},
	}

	var buf bytes.Buffer
	if err := writeTables(&buf, formatTable, results); err != nil {
		t.Fatalf("writeTables() error = %v", err)
	}
	out := buf.String()
	if strings.Index(out, "== a.csv ==") > strings.Index(out, "== b.csv ==") {
		t.Errorf("files out of order:\n%s", out)
	}

	buf.Reset()
	if err := writeTables(&buf, formatJSON, results); err != nil {
		t.Fatalf("writeTables() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"file": "b.csv"`) || !strings.Contains(buf.String(), `"headers": [`) {
		t.Errorf("json output should carry file names and flattened tables:\n%s", buf.String())
	}
}

func TestWriteTables_YAML(t *testing.T) {
	table := core.Parse("h1,h2\nv1,v2")

	var buf bytes.Buffer
	if err := writeTables(&buf, formatYAML, []namedTable{{File: "a.csv", Table: table}}); err != nil {
		t.Fatalf("writeTables() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "headers:\n") {
		t.Errorf("yaml output should start with headers:\n%s", buf.String())
	}

	var got core.Table
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if strings.Join(got.Headers, ",") != "h1,h2" || len(got.Rows) != 1 || strings.Join(got.Rows[0], ",") != "v1,v2" {
		t.Errorf("decoded %+v, want headers h1,h2 and one row v1,v2", got)
	}
}
