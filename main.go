package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ossyrian/pngme/internal/config"
	"github.com/ossyrian/pngme/internal/logging"
	"github.com/ossyrian/pngme/internal/png"
)

var (
	cfgFile string
	cfg     *config.Config
	fs      afero.Fs = afero.NewOsFs()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:               "pngme",
	Short:             "Hide, retrieve, and remove messages in PNG ancillary chunks",
	PersistentPreRunE: setup,
}

var encodeCmd = &cobra.Command{
	Use:   "encode <file> <chunk-type> <message>",
	Short: "Append a chunk carrying a message and write the file back",
	Args:  cobra.ExactArgs(3),
	RunE:  encode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file> <chunk-type>",
	Short: "Print the message stored in the first chunk of the given type",
	Args:  cobra.ExactArgs(2),
	RunE:  decode,
}

var removeCmd = &cobra.Command{
	Use:   "remove <file> <chunk-type>",
	Short: "Remove the first chunk of the given type and write the file back",
	Args:  cobra.ExactArgs(2),
	RunE:  remove,
}

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "List every chunk in the file",
	Args:  cobra.ExactArgs(1),
	RunE:  printChunks,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")

	// other opts
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-output-dir", "", "directory to write log files (if set, logs are written to both stdout and file)")

	encodeCmd.Flags().StringP("output", "o", "", "path to write the modified PNG to (default: rewrite input in place)")
	encodeCmd.Flags().Bool("dry-run", false, "mutate without writing output (validation)")
	removeCmd.Flags().Bool("dry-run", false, "mutate without writing output (validation)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_output_dir", rootCmd.PersistentFlags().Lookup("log-output-dir"))
	viper.BindPFlag("output", encodeCmd.Flags().Lookup("output"))

	rootCmd.AddCommand(encodeCmd, decodeCmd, removeCmd, printCmd)
}

// initConfig reads in config file and environment variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pngme"))
		}
		viper.AddConfigPath("/etc/pngme")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("PNGME")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setup unmarshals the effective config and wires up logging before any
// subcommand runs
func setup(cmd *cobra.Command, args []string) error {
	if dryRun := cmd.Flags().Lookup("dry-run"); dryRun != nil {
		viper.BindPFlag("dry_run", dryRun)
	}

	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogOutputDir); err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}

	return nil
}

// readPng loads a whole PNG file and parses it into a chunk stream
func readPng(path string) (*png.Png, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PNG file: %w", err)
	}

	p, err := png.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return p, nil
}

// writePng serializes the chunk stream back to disk, honoring dry-run
func writePng(p *png.Png, path string) error {
	if cfg.DryRun {
		slog.Info("dry run, skipping write", "path", path)
		return nil
	}

	if err := afero.WriteFile(fs, path, p.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write PNG file: %w", err)
	}

	slog.Info("wrote file", "path", path)
	return nil
}

// encode appends a new chunk carrying the message and writes the result
func encode(cmd *cobra.Command, args []string) error {
	path, typeStr, message := args[0], args[1], args[2]

	p, err := readPng(path)
	if err != nil {
		return err
	}

	chunkType, err := png.ChunkTypeFromString(typeStr)
	if err != nil {
		return err
	}

	p.AppendChunk(png.NewChunk(chunkType, []byte(message)))
	slog.Info("appended chunk", "type", chunkType, "bytes", len(message))

	outPath := cfg.OutputFile
	if outPath == "" {
		outPath = path
	}

	return writePng(p, outPath)
}

// decode prints the message carried by the first chunk of the given type
func decode(cmd *cobra.Command, args []string) error {
	path, typeStr := args[0], args[1]

	p, err := readPng(path)
	if err != nil {
		return err
	}

	chunk := p.ChunkByType(typeStr)
	if chunk == nil {
		slog.Warn("no such chunk", "type", typeStr, "path", path)
		return nil
	}

	message, err := chunk.DataAsString()
	if err != nil {
		return err
	}

	fmt.Println(message)
	return nil
}

// remove drops the first chunk of the given type and writes the result
func remove(cmd *cobra.Command, args []string) error {
	path, typeStr := args[0], args[1]

	p, err := readPng(path)
	if err != nil {
		return err
	}

	removed, err := p.RemoveFirstChunk(typeStr)
	if err != nil {
		return err
	}
	slog.Info("removed chunk", "type", removed.Type(), "bytes", removed.Length())

	return writePng(p, path)
}

// printChunks lists every chunk in the file
func printChunks(cmd *cobra.Command, args []string) error {
	p, err := readPng(args[0])
	if err != nil {
		return err
	}

	slog.Info("parsed file", "path", args[0], "chunks", len(p.Chunks()))
	fmt.Print(p.String())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
