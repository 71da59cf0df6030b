package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davis-3450/repo2text/pkg/clipboard"
	"github.com/Davis-3450/repo2text/pkg/logging"
	"github.com/Davis-3450/repo2text/pkg/repotext"
	"github.com/Davis-3450/repo2text/pkg/tokencount"
	"github.com/Davis-3450/repo2text/pkg/version"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Configuration keys resolved through viper. Each key is bound to its flag
// and overridable through a REPO2TEXT_* environment variable or an optional
// .repo2text.yaml file.
const (
	previewLinesKey    = "preview_lines"
	sniffBytesKey      = "sniff_bytes"
	binaryThresholdKey = "binary_threshold"
	maxFileBytesKey    = "max_file_bytes"
)

var configuration = viper.New()

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "repo2text [root_dir]",
	Short: "Convert a repository into an LLM-friendly text format",
	Long: `repo2text converts a directory tree of source files into a single structured
text artifact: a project tree diagram followed by per-file contents, with
binary files and ignored paths excluded. The full output is copied to the
clipboard and a truncated preview is printed to the console.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if err := logging.Setup(verbose, "repo2text", version.Get().Version); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return loadConfiguration()
	}
	RootCmd.Flags().StringP("output", "o", "", "Output file to save the formatted repository (optional)")
	RootCmd.Flags().Bool("no-copy", false, "Skip copying the result to the clipboard")
	RootCmd.Flags().Bool("no-default-ignores", false, "Apply only the patterns from the ignore file")
	RootCmd.Flags().Bool("tokens", false, "Report an estimated token count for the result")
	RootCmd.Flags().Int("preview-lines", repotext.DefaultPreviewLines, "Maximum lines per file in the console preview")
	RootCmd.Flags().Int("sniff-bytes", repotext.DefaultSniffBytes, "Prefix length inspected by binary detection")
	RootCmd.Flags().Float64("binary-threshold", repotext.DefaultBinaryThreshold, "Non-printable byte ratio above which a file is binary")
	RootCmd.Flags().Int64("max-file-bytes", repotext.DefaultMaxFileBytes, "Files larger than this are treated as binary")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
}

// loadConfiguration binds the policy flags into viper and merges in the
// optional .repo2text.yaml file plus REPO2TEXT_* environment variables.
func loadConfiguration() error {
	bindings := map[string]string{
		previewLinesKey:    "preview-lines",
		sniffBytesKey:      "sniff-bytes",
		binaryThresholdKey: "binary-threshold",
		maxFileBytesKey:    "max-file-bytes",
	}
	for key, flagName := range bindings {
		if err := configuration.BindPFlag(key, RootCmd.Flags().Lookup(flagName)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flagName, err)
		}
	}

	configuration.SetEnvPrefix("REPO2TEXT")
	configuration.AutomaticEnv()

	configuration.SetConfigName(".repo2text")
	configuration.SetConfigType("yaml")
	configuration.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		configuration.AddConfigPath(home)
	}
	if err := configuration.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read configuration file: %w", err)
		}
	}
	return nil
}

// runRoot executes the pipeline and performs the console, clipboard, and
// file side effects around its result.
func runRoot(cmd *cobra.Command, args []string) error {
	logger := logging.Logger
	color.NoColor = color.NoColor || !term.IsTerminal(int(os.Stdout.Fd()))

	rootDir := "."
	if len(args) == 1 {
		rootDir = args[0]
	}

	noDefaults, _ := cmd.Flags().GetBool("no-default-ignores")
	opts := repotext.Options{
		PreviewLines:    configuration.GetInt(previewLinesKey),
		SniffBytes:      configuration.GetInt(sniffBytesKey),
		BinaryThreshold: configuration.GetFloat64(binaryThresholdKey),
		MaxFileBytes:    configuration.GetInt64(maxFileBytesKey),
		UseDefaults:     !noDefaults,
	}

	ignoreData, readErr := os.ReadFile(filepath.Join(rootDir, repotext.IgnoreFileName))
	source := repotext.IgnoreSource{Text: string(ignoreData), Found: readErr == nil}

	result, warnings, err := repotext.Run(rootDir, source, opts, logger)
	if err != nil {
		return err
	}

	for _, warning := range warnings {
		color.Yellow("Alert: %s", warning)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Preview)

	noCopy, _ := cmd.Flags().GetBool("no-copy")
	if !noCopy {
		if copyErr := clipboard.NewService().Copy(result.Full); copyErr != nil {
			color.Red("Error copying to clipboard: %v", copyErr)
			logger.Warn("Clipboard copy failed", zap.Error(copyErr))
		} else {
			color.Cyan("The repository has been successfully copied to the clipboard.")
		}
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath != "" {
		if writeErr := os.WriteFile(outputPath, []byte(result.Full), 0644); writeErr != nil {
			color.Red("Error writing to output file: %v", writeErr)
			logger.Warn("Output file write failed", zap.String("path", outputPath), zap.Error(writeErr))
		} else {
			color.Cyan("The repository has been written to '%s'.", outputPath)
		}
	}

	if showTokens, _ := cmd.Flags().GetBool("tokens"); showTokens {
		if tokenCount, tokenErr := tokencount.Estimate(result.Full); tokenErr == nil {
			color.Cyan("Estimated token count: %d", tokenCount)
		} else {
			logger.Debug("Token estimation unavailable", zap.Error(tokenErr))
		}
	}

	color.Cyan("Operation completed in %.2f seconds.", result.Elapsed.Seconds())
	return nil
}
