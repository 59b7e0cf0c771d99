package main

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Vitexus/pohoda/agenda"
	"github.com/Vitexus/pohoda/document"
	"github.com/Vitexus/pohoda/source"
	"github.com/Vitexus/pohoda/xmlnode"
)

// node is the YAML view of a fragment element.
type node struct {
	Name     string            `yaml:"name"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Text     string            `yaml:"text,omitempty"`
	Children []node            `yaml:"children,omitempty"`
}

func toNode(el *xmlnode.Element) node {
	n := node{Name: el.Name, Text: el.Text}
	for _, a := range el.Attrs {
		if n.Attrs == nil {
			n.Attrs = map[string]string{}
		}
		n.Attrs[a.Name] = a.Value
	}
	for _, c := range el.Children {
		n.Children = append(n.Children, toNode(c))
	}
	return n
}

func newImportCmd(opts *globalOptions) *cobra.Command {
	var (
		from   string
		kind   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Print the records of one agenda kind found in a response document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "xml" && format != "yaml" {
				return fmt.Errorf("unknown format %q (xml|yaml)", format)
			}
			reg := agenda.DefaultRegistry()
			if _, err := reg.Resolve(kind); err != nil {
				return err
			}

			timeout := time.Duration(opts.cfg.Import.TimeoutMS) * time.Millisecond
			src, err := source.NewClient(timeout).Open(cmd.Context(), from)
			if err != nil {
				return err
			}
			defer src.Close()

			r := document.NewReader(reg, document.WithReaderLogger(logrus.WithField("from", from)))
			if err := r.Open(src, kind); err != nil {
				return err
			}
			return printFragments(cmd.OutOrStdout(), r, format)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "response document path or http(s) URL")
	cmd.Flags().StringVarP(&kind, "kind", "k", agenda.KindStorage, "agenda kind to read")
	cmd.Flags().StringVar(&format, "format", "xml", "output format: xml|yaml")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func printFragments(out io.Writer, r *document.Reader, format string) error {
	count := 0
	for {
		f, err := r.Next()
		if err != nil {
			return err
		}
		if f == nil {
			break
		}
		count++

		if format == "xml" {
			if _, err := fmt.Fprintln(out, f.String()); err != nil {
				return err
			}
			continue
		}
		el, err := f.Element()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal([]node{toNode(el)})
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	}
	logrus.WithField("records", count).Info("import finished")
	return nil
}
