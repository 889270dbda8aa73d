package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verdant-robotics/cbuf/pkg/cbuf"
)

func newHashCmd() *cobra.Command {
	var importsFile string
	var namespace string

	cmd := &cobra.Command{
		Use:   "hash <file.cbuf> <type-name>",
		Short: "Print the 64-bit wire hash of a struct type",
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

			var namespaces []string
			if namespace != "" {
				namespaces = strings.Split(namespace, "::")
			}

			h, err := sc.ComputeHashValue(namespaces, args[1])
			if err != nil {
				return err
			}

			fmt.Println(h)
			return nil
		},
	}
	cmd.Flags().StringVar(&importsFile, "imports", "", "YAML file mapping #import paths to files on disk")
	cmd.Flags().StringVar(&namespace, "namespace", "", "Namespace to resolve the type name from, e.g. foo::bar")
	return cmd
}
