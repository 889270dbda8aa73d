package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/verdant-robotics/cbuf/pkg/cbuf"
	"github.com/verdant-robotics/cbuf/pkg/codec"
)

func newDecodeCmd() *cobra.Command {
	var importsFile string

	cmd := &cobra.Command{
		Use:   "decode <file.cbuf> <messages.bin>",
		Short: "Decode every framed message in a binary file and print it as YAML",
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

			buf, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}

			offset := 0
			for offset < len(buf) {
				msg, err := sc.DeserializeMessage(buf, offset)
				if err != nil {
					var tooSmall *codec.BufferTooSmallError
					if errors.As(err, &tooSmall) && offset > 0 {
						break // trailing padding shorter than a preamble
					}
					return err
				}

				out, err := yaml.Marshal(msg)
				if err != nil {
					return fmt.Errorf("marshaling message at offset %d: %w", offset, err)
				}
				fmt.Printf("---\n%s", out)

				offset += int(msg.Size)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&importsFile, "imports", "", "YAML file mapping #import paths to files on disk")
	return cmd
}
