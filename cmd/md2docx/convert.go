package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWriteDOCX        = errors.New("failed to write DOCX file")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// runConvert orchestrates the convert command.
func runConvert(args []string, stdout, stderr io.Writer) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if flags.config != "" {
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(flags.config)))
			}
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, flags.output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files in %s%s", ErrNoInput, inputPath, hints.ForNoInputFiles())
	}

	conv, err := newConverter(cfg)
	if err != nil {
		if errors.Is(err, md2docx.ErrStyleNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(md2docx.StyleNames()))
		}
		return err
	}

	var failed int
	for _, file := range files {
		start := time.Now()
		if err := convertFile(context.Background(), conv, file); err != nil {
			failed++
			if errors.Is(err, context.DeadlineExceeded) {
				fmt.Fprintf(stderr, "FAIL %s: %v%s\n", file.InputPath, err, hints.ForTimeout())
			} else {
				fmt.Fprintf(stderr, "FAIL %s: %v\n", file.InputPath, err)
			}
			continue
		}
		if flags.verbose {
			fmt.Fprintf(stdout, "OK   %s -> %s (%s)\n", file.InputPath, file.OutputPath, time.Since(start).Round(time.Millisecond))
		} else if !flags.quiet {
			fmt.Fprintf(stdout, "OK   %s -> %s\n", file.InputPath, file.OutputPath)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

// mergeFlags merges CLI flags into the config (CLI wins).
func mergeFlags(flags *convertFlags, cfg *config.Config) error {
	if flags.style != "" {
		cfg.Style.Name = flags.style
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid --timeout %q: want a positive duration like 90s or 2m", flags.timeout)
		}
		cfg.Convert.TimeoutSeconds = int(d.Seconds())
	}
	return nil
}

// resolveInputPath picks the input from positional args or the config.
func resolveInputPath(positional []string, cfg *config.Config) (string, error) {
	if len(positional) > 0 {
		return positional[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", fmt.Errorf("%w: pass a file or directory, or set input.defaultDir in config", ErrNoInput)
}

// newConverter builds the library converter from the merged config.
func newConverter(cfg *config.Config) (*md2docx.Converter, error) {
	opts := []md2docx.Option{}
	if cfg.Style.Name != "" {
		opts = append(opts, md2docx.WithStyleName(cfg.Style.Name))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2docx.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Convert.TimeoutSeconds > 0 {
		opts = append(opts, md2docx.WithTimeout(time.Duration(cfg.Convert.TimeoutSeconds)*time.Second))
	}
	return md2docx.NewConverter(opts...)
}

// convertFile converts one markdown file and writes the DOCX next to the
// resolved output path, creating directories as needed.
func convertFile(ctx context.Context, conv *md2docx.Converter, file FileToConvert) error {
	content, err := os.ReadFile(file.InputPath) // #nosec G304 -- path discovered from user input
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	result, err := conv.Convert(ctx, md2docx.Input{Markdown: string(content)})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(file.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteDOCX, err, hints.ForOutputDirectory())
		}
	}
	if err := os.WriteFile(file.OutputPath, result.DOCX, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDOCX, err)
	}
	return nil
}

// discoverFiles finds all markdown files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToConvert{{
			InputPath:  inputPath,
			OutputPath: resolveOutputPath(inputPath, outputDir, ""),
		}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !fileutil.IsMarkdownFile(path) {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, inputPath),
		})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the DOCX output path for a markdown file.
// An outputDir ending in .docx names the output file directly; otherwise
// the input's relative directory structure is mirrored under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".docx")
	}

	if strings.HasSuffix(outputDir, ".docx") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base+".docx")
		}
	}
	return filepath.Join(outputDir, base+".docx")
}

// validateMarkdownExtension checks that a single-file input is markdown.
func validateMarkdownExtension(path string) error {
	if fileutil.IsMarkdownFile(path) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
}
