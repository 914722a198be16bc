// Command sanice prints the multilingual quick-reference for the
// sanice pipeline: the version, a usage snippet and the four-language
// operation alias table.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-sanice/sanice/lang"
)

const version = "1.0.10"

// usageIntro is the per-language lead-in above the code snippet.
var usageIntro = map[string]string{
	"pt": "Para usar no código Go:",
	"en": "To use inside Go code:",
	"zh": "在 Go 代码中使用：",
	"hi": "Go code mein use karne ke liye:",
}

// helpVerbLang maps each help verb to its default language profile.
var helpVerbLang = map[string]string{
	"help":    "en",
	"ajuda":   "pt",
	"socorro": "pt",
	"bangzhu": "zh",
	"madad":   "hi",
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "sanice",
		Short:   "Multilingual data cleaning and auto-ML pipeline",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Sanice v%s installed! Try:\n", version)
			fmt.Println("  sanice help     (English)")
			fmt.Println("  sanice ajuda    (Português)")
			fmt.Println("  sanice bangzhu  (中文)")
			fmt.Println("  sanice madad    (Hindi)")
			fmt.Println("  sanice --version")
			return nil
		},
	}

	help := &cobra.Command{
		Use:     "help [lang]",
		Aliases: []string{"ajuda", "socorro", "bangzhu", "madad"},
		Short:   "Print the multilingual command reference",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := helpVerbLang[cmd.CalledAs()]
			if code == "" {
				code = "en"
			}
			if len(args) > 0 {
				if !lang.IsSupported(args[0]) {
					code = "en"
				} else {
					code = args[0]
				}
			}
			printReference(cmd, code)
			return nil
		},
	}
	root.AddCommand(help)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the sanice version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Sanice v%s\n", version)
			return nil
		},
	})

	return root
}

// printReference renders the usage snippet plus the four-column alias
// table (PT | EN | ZH | HI).
func printReference(cmd *cobra.Command, code string) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "\n=== Sanice CLI Help (%s) ===\n", strings.ToUpper(code))
	fmt.Fprintf(out, "\n%s\n", usageIntro[code])
	fmt.Fprintln(out, `  import "github.com/go-sanice/sanice"`)
	fmt.Fprintf(out, "  p := sanice.New(\"data.csv\", sanice.WithLang(%q))\n", code)

	fmt.Fprintln(out, "\nReference / Referência (PT | EN | ZH | HI):")
	fmt.Fprintln(out, strings.Repeat("-", 75))
	for _, canonical := range lang.Canonicals() {
		row, ok := lang.AliasRow(canonical)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %-20s | %-20s | %-8s | %s\n", row[0], row[1], row[2], row[3])
	}
	fmt.Fprintln(out, strings.Repeat("-", 75))
	fmt.Fprintf(out, "v%s\n", version)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
