package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/verdant-robotics/cbuf/pkg/cbuf"
	"github.com/verdant-robotics/cbuf/pkg/schema"
)

// messageDoc is the on-disk YAML shape accepted by `cbufc encode`: a
// type name, an optional timestamp, and a payload tree matching the
// struct's field names.
type messageDoc struct {
	TypeName  string         `yaml:"type_name"`
	Timestamp float64        `yaml:"timestamp"`
	Payload   map[string]any `yaml:"payload"`
}

func newEncodeCmd() *cobra.Command {
	var importsFile, outFile string

	cmd := &cobra.Command{
		Use:   "encode <file.cbuf> <message.yaml>",
		Short: "Encode a YAML-described message into a framed binary file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			imports := map[string]string{}
			if importsFile != "" {
				m, err := loadImportMap(importsFile)
				if err != nil {
					return err
				}
				imports = m
			}

			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			sc, err := cbuf.Parse(string(text), imports)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}
			var doc messageDoc
			if err := yaml.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("parsing %s: %w", args[1], err)
			}

			buf, err := sc.SerializeMessage(&schema.Message{
				TypeName:  doc.TypeName,
				Timestamp: doc.Timestamp,
				Payload:   doc.Payload,
			})
			if err != nil {
				return err
			}

			if outFile == "" || outFile == "-" {
				_, err = os.Stdout.Write(buf)
				return err
			}
			return os.WriteFile(outFile, buf, 0o644)
		},
	}
	cmd.Flags().StringVar(&importsFile, "imports", "", "YAML file mapping #import paths to files on disk")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (defaults to stdout)")
	return cmd
}
