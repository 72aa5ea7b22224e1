// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen writes a markdown page per revdiff sub-command, built from
// the live command tree plus optional examples kept in docs/examples.yaml.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/revdiff/internal/command"
	"github.com/tfctl/revdiff/internal/version"
)

type Examples map[string][]Example

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type Flag struct {
	Syntax      string
	Description string
}

type TemplateData struct {
	ID       string
	Short    string
	Usage    string
	Flags    []Flag
	Examples []Example
	Date     string
	Version  string
}

const pageTmpl = `# revdiff {{ .ID }}

{{ .Short }}

## Usage

` + "```" + `
{{ .Usage }}
` + "```" + `
{{ if .Flags }}
## Flags

| Flag | Description |
|------|-------------|
{{- range .Flags }}
| ` + "`{{ .Syntax }}`" + ` | {{ .Description }} |
{{- end }}
{{ end }}
{{- if .Examples }}
## Examples
{{ range .Examples }}
{{ .Description }}

` + "```" + `
{{ .Command }}
` + "```" + `
{{ end }}
{{- end }}
_Generated {{ .Date }} for revdiff {{ .Version }}._
`

func main() {
	docs := "docs"
	if len(os.Args) > 1 {
		docs = os.Args[1]
	}

	if err := generate(context.Background(), docs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(ctx context.Context, docs string) error {
	app, err := command.InitApp(ctx, []string{"revdiff"})
	if err != nil {
		return err
	}

	examples, err := loadExamples(filepath.Join(docs, "examples.yaml"))
	if err != nil {
		return err
	}

	folder := filepath.Join(docs, "commands")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return err
	}

	for _, sub := range app.Commands {
		target := filepath.Join(folder, sub.Name+".md")
		file, err := os.Create(target)
		if err != nil {
			return err
		}
		fmt.Println("Generating", target)

		err = render(file, sub, examples[sub.Name])
		file.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// loadExamples tolerates a missing file.
func loadExamples(path string) (Examples, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Examples{}, nil
	} else if err != nil {
		return nil, err
	}

	var ex Examples
	if err := yaml.Unmarshal(data, &ex); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ex, nil
}

func render(w io.Writer, sub *cli.Command, examples []Example) error {
	tmpl, err := template.New("page").Parse(pageTmpl)
	if err != nil {
		return err
	}

	usage := sub.UsageText
	if usage == "" {
		usage = "revdiff " + sub.Name + " [options]"
	}

	data := TemplateData{
		ID:       sub.Name,
		Short:    sub.Usage,
		Usage:    strings.TrimSpace(usage),
		Flags:    flags(sub),
		Examples: examples,
		Date:     time.Now().Format("January 2, 2006"),
		Version:  version.String(),
	}

	return tmpl.Execute(w, data)
}

func flags(sub *cli.Command) []Flag {
	var out []Flag
	for _, f := range sub.Flags {
		names := f.Names()
		parts := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				parts = append(parts, "-"+n)
			} else {
				parts = append(parts, "--"+n)
			}
		}

		var desc string
		if d, ok := f.(interface{ GetUsage() string }); ok {
			desc = d.GetUsage()
		}
		out = append(out, Flag{Syntax: strings.Join(parts, ", "), Description: desc})
	}
	return out
}
