package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/verdant-robotics/cbuf/pkg/cbuf"
	"github.com/verdant-robotics/cbuf/pkg/schema"
)

func newParseCmd() *cobra.Command {
	var importsFile string

	cmd := &cobra.Command{
		Use:   "parse <file.cbuf>",
		Short: "Parse and validate a cbuf schema file, printing its structs",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
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

			noColor, _ := c.Flags().GetBool("no-color")
			printSchema(sc, noColor)
			return nil
		},
	}
	cmd.Flags().StringVar(&importsFile, "imports", "", "YAML file mapping #import paths to files on disk")
	return cmd
}

// colorer resolves an output color function, falling back to a no-op when
// stdout isn't a terminal or colorizing was explicitly disabled (same
// tty-detection pattern the rest of the pack uses go-isatty for).
func colorer(c *color.Color, disabled bool) func(format string, args ...any) string {
	if disabled || !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Sprintf
	}
	return c.Sprintf
}

func printSchema(sc *cbuf.Schema, noColor bool) {
	namespace := colorer(color.New(color.FgCyan, color.Bold), noColor)
	structName := colorer(color.New(color.FgGreen, color.Bold), noColor)
	enumName := colorer(color.New(color.FgYellow, color.Bold), noColor)
	fieldType := colorer(color.New(color.FgMagenta), noColor)
	hashColor := colorer(color.New(color.Faint), noColor)

	currentNamespace := ""
	for _, e := range sc.Entities {
		ns := ""
		if len(e.Namespaces) > 0 {
			ns = e.Namespaces[len(e.Namespaces)-1]
		}
		if ns != currentNamespace {
			if ns != "" {
				fmt.Println(namespace("namespace %s", ns))
			}
			currentNamespace = ns
		}

		if e.IsEnum {
			fmt.Println(enumName("enum %s", e.Name))
			for _, m := range e.Definitions {
				fmt.Printf("  %s = %d\n", m.Name, m.Value)
			}
			continue
		}

		kind := "struct"
		if e.IsNakedStruct {
			kind = "@naked struct"
		}
		fmt.Printf("%s %s %s\n", kind, structName(e.Name), hashColor("(hash %d)", e.HashValue))
		for _, f := range e.Definitions {
			printField(fieldType, f)
		}
	}
}

func printField(fieldType func(string, ...any) string, f *schema.Field) {
	arr := ""
	switch {
	case f.ArrayLength > 0:
		arr = fmt.Sprintf("[%d]", f.ArrayLength)
	case f.ArrayUpperBound > 0:
		arr = fmt.Sprintf("[%d compact]", f.ArrayUpperBound)
	case f.IsArray:
		arr = "[]"
	}
	fmt.Printf("  %s%s %s\n", fieldType(f.Type), arr, f.Name)
}
