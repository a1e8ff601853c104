// Command bjsonctl drives the bjson package from the shell: parse,
// render, extract, set, remove, patch, and validate JSON/JSON-5 text or
// BJSON blobs read from a file or stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xdg-go/bjson/bjson"
	"github.com/xdg-go/bjson/config"
)

func main() {
	cfg := config.NewConfig()

	var cfgPath string
	root := &cobra.Command{
		Use:           "bjsonctl",
		Short:         "Inspect and edit BJSON/JSON-5 documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.FromYAML(cfgPath)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	cfg.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newRenderCmd(cfg),
		newExtractCmd(cfg),
		newSetCmd(cfg),
		newRemoveCmd(cfg),
		newPatchCmd(cfg),
		newValidateCmd(cfg),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bjsonctl:", err)
		os.Exit(1)
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func parseOpts(cfg *config.Config) bjson.ParseOptions {
	return bjson.ParseOptions{MaxDepth: cfg.MaxDepth}
}

func newRenderCmd(cfg *config.Config) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Parse JSON-5/BJSON input and render canonical JSON text",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			p, err := bjson.ParseText(input, parseOpts(cfg))
			if err != nil {
				return err
			}
			out, err := bjson.Render(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input file (default: stdin)")
	return cmd
}

func newExtractCmd(cfg *config.Config) *cobra.Command {
	var file, path string
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the element at a path",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			p, err := bjson.ParseText(input, parseOpts(cfg))
			if err != nil {
				return err
			}
			pp, err := bjson.ParsePath(path)
			if err != nil {
				return err
			}
			off, found, err := bjson.Navigate(p.Bytes(), 0, pp)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), "null")
				return nil
			}
			out, err := bjson.RenderElement(p.Bytes(), off)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input file (default: stdin)")
	cmd.Flags().StringVar(&path, "path", "$", "path expression")
	return cmd
}

func newSetCmd(cfg *config.Config) *cobra.Command {
	return newEditCmd(cfg, "set", "Set the element at a path, creating the path if missing", bjson.OpSet)
}

func newRemoveCmd(cfg *config.Config) *cobra.Command {
	cmd := newEditCmd(cfg, "remove", "Remove the element at a path", bjson.OpDelete)
	cmd.Flags().Lookup("value").Hidden = true
	return cmd
}

func newEditCmd(cfg *config.Config, use, short string, op bjson.Opcode) *cobra.Command {
	var file, path, value string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			p, err := bjson.ParseText(input, parseOpts(cfg))
			if err != nil {
				return err
			}
			pp, err := bjson.ParsePath(path)
			if err != nil {
				return err
			}
			var newElem []byte
			if op != bjson.OpDelete {
				vp, err := bjson.ParseText([]byte(value), parseOpts(cfg))
				if err != nil {
					return err
				}
				newElem = vp.Bytes()
			}
			if err := p.Apply(pp, op, newElem); err != nil {
				return err
			}
			out, err := bjson.Render(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input file (default: stdin)")
	cmd.Flags().StringVar(&path, "path", "$", "path expression")
	cmd.Flags().StringVar(&value, "value", "null", "JSON value to write")
	return cmd
}

func newPatchCmd(cfg *config.Config) *cobra.Command {
	var file, patchFile string
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Apply an RFC 7396 merge patch",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			patchInput, err := os.ReadFile(patchFile)
			if err != nil {
				return err
			}
			target, err := bjson.ParseText(input, parseOpts(cfg))
			if err != nil {
				return err
			}
			patch, err := bjson.ParseText(patchInput, parseOpts(cfg))
			if err != nil {
				return err
			}
			if err := bjson.MergePatch(target, patch.Bytes()); err != nil {
				return err
			}
			out, err := bjson.Render(target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input file (default: stdin)")
	cmd.Flags().StringVar(&patchFile, "patch", "", "path to the merge-patch document")
	return cmd
}

func newValidateCmd(cfg *config.Config) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report whether input parses, and at what offset it fails",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			_, err = bjson.ParseText(input, parseOpts(cfg))
			if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			var be *bjson.Error
			if bjson.AsError(err, &be) {
				fmt.Fprintf(cmd.OutOrStdout(), "invalid: %s at offset %d\n", be.Kind, be.ByteOffset)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "invalid:", err)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input file (default: stdin)")
	return cmd
}
