package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Vitexus/pohoda/agenda"
	"github.com/Vitexus/pohoda/document"
)

// exportFile is the YAML input of the export command.
type exportFile struct {
	ID    string       `yaml:"id"`
	Note  string       `yaml:"note"`
	Items []exportItem `yaml:"items"`
}

type exportItem struct {
	Kind     string         `yaml:"kind"`
	ID       string         `yaml:"id"`
	Data     map[string]any `yaml:"data"`
	Children []exportItem   `yaml:"children"`
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	var (
		input  string
		output string
		id     string
		note   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write agendas described in a YAML file into a dataPack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			var file exportFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("parse %s: %w", input, err)
			}

			if output == "" {
				output = opts.cfg.Export.Path
			}
			if output == "" {
				return fmt.Errorf("no output path; use --out or export.path")
			}
			if id == "" {
				id = file.ID
			}
			if id == "" {
				id = uuid.NewString()
			}
			if !cmd.Flags().Changed("note") {
				note = file.Note
				if note == "" {
					note = opts.cfg.Export.Note
				}
			}

			return export(opts.cfg.ICO, opts.cfg.Application, output, id, note, file.Items)
		},
	}

	cmd.Flags().StringVarP(&input, "in", "i", "", "YAML file listing the agendas")
	cmd.Flags().StringVarP(&output, "out", "o", "", "dataPack file to write (default export.path)")
	cmd.Flags().StringVar(&id, "id", "", "document id (default from input, else a random UUID)")
	cmd.Flags().StringVar(&note, "note", "", "document note")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// export builds every agenda before the file is created, so invalid input
// never leaves a partial document behind.
func export(ico, application, path, id, note string, items []exportItem) error {
	reg := agenda.DefaultRegistry()
	built := make([]agenda.Agenda, 0, len(items))
	for i, item := range items {
		a, err := build(reg, ico, item, "")
		if err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
		built = append(built, a)
	}

	w := document.NewWriter(ico,
		document.WithApplication(application),
		document.WithWriterLogger(logrus.WithField("path", path)))
	if err := w.Create(path, id, note); err != nil {
		return err
	}
	for i, a := range built {
		itemID := items[i].ID
		if itemID == "" {
			itemID = strconv.Itoa(i + 1)
		}
		if err := w.AddItem(itemID, a); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}

// build creates item and its children. Children default to the kind of
// their parent.
func build(reg *agenda.Registry, ico string, item exportItem, parentKind string) (agenda.Agenda, error) {
	kind := item.Kind
	if kind == "" {
		kind = parentKind
	}
	a, err := reg.Create(kind, item.Data, ico)
	if err != nil {
		return nil, err
	}
	for _, c := range item.Children {
		child, err := build(reg, ico, c, kind)
		if err != nil {
			return nil, err
		}
		if err := attach(a, child); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func attach(parent, child agenda.Agenda) error {
	switch p := parent.(type) {
	case *agenda.Storage:
		if c, ok := child.(*agenda.Storage); ok {
			p.AddSubstorage(c)
			return nil
		}
	case *agenda.Category:
		if c, ok := child.(*agenda.Category); ok {
			p.AddSubcategory(c)
			return nil
		}
	}
	return fmt.Errorf("%s cannot hold %s children", parent.Kind(), child.Kind())
}
