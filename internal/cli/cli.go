// Package cli implements the bimap command line tool.
// It loads JSON or YAML mapping documents into a BiMap,
// so a mapping that is not one-to-one is rejected up front.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"go.llib.dev/bimap/pkg/bimap"
	"go.llib.dev/bimap/pkg/bimap/bimapjsoniter"
	"go.llib.dev/bimap/pkg/errorkit"
	"go.llib.dev/bimap/pkg/logging"
)

const (
	EnvPrefix = "BIMAP"

	FlagLogLevel   = "log-level"
	FlagFormat     = "format"
	FlagIgnoreCase = "ignore-case"
	FlagReverse    = "reverse"

	FormatJSON = "json"
	FormatYAML = "yaml"

	// StdinPath makes a command read the document from the standard input.
	StdinPath = "-"
)

const ErrUnknownFormat errorkit.Error = "ErrUnknownFormat"

// Mapping is the document shape the tool works with.
type Mapping = bimap.BiMap[string, string]

type app struct {
	config *viper.Viper
	logger *logging.Logger
}

// New creates the root command. Every call returns an independent command tree.
func New() *cobra.Command {
	a := &app{config: viper.New()}
	cmd := &cobra.Command{
		Use:   "bimap [sub-command]",
		Short: "Validate and query one-to-one mapping documents",
		Long: `bimap loads JSON or YAML objects as bidirectional maps.
A document where two keys share the same value is rejected,
and lookups work in both directions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: a.setup,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	flags := cmd.PersistentFlags()
	flags.String(FlagLogLevel, logging.LevelInfo.String(), `Log level, one of debug, info, warn, error or fatal.`)
	flags.String(FlagFormat, FormatJSON, `Output format, json or yaml. Also the input format of documents read from stdin.`)
	flags.Bool(FlagIgnoreCase, false, `Compare keys case-insensitively on both sides.`)
	_ = a.config.BindPFlags(flags)
	a.config.SetEnvPrefix(EnvPrefix)
	a.config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.config.AutomaticEnv()

	cmd.AddCommand(a.validateCmd())
	cmd.AddCommand(a.lookupCmd())
	cmd.AddCommand(a.invertCmd())
	cmd.AddCommand(a.convertCmd())
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(a.config.GetString(FlagLogLevel))
	if err != nil {
		return err
	}
	if _, err := a.format(); err != nil {
		return err
	}
	a.logger = &logging.Logger{Out: cmd.ErrOrStderr(), Level: level}
	return nil
}

func (a *app) format() (string, error) {
	switch format := strings.ToLower(a.config.GetString(FlagFormat)); format {
	case FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", ErrUnknownFormat.F("%q", format)
	}
}

func (a *app) options() []bimap.Option[string, string] {
	if !a.config.GetBool(FlagIgnoreCase) {
		return nil
	}
	return []bimap.Option[string, string]{bimap.Config[string, string]{
		DirectComparer:  bimap.IgnoreCase(),
		ReverseComparer: bimap.IgnoreCase(),
	}}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a mapping document is one-to-one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.ContextWith(cmd.Context(), logging.Field("file", args[0]))
			m, err := a.load(ctx, cmd, args[0])
			if err != nil {
				return err
			}
			a.logger.Info(ctx, "mapping is one-to-one", logging.Field("pairs", m.Len()))
			_, err = io.WriteString(cmd.OutOrStdout(), "ok\n")
			return err
		},
	}
}

func (a *app) lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup FILE KEY",
		Short: "Print the partner of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reverse, err := cmd.Flags().GetBool(FlagReverse)
			if err != nil {
				return err
			}
			ctx := logging.ContextWith(cmd.Context(), logging.Field("file", args[0]))
			m, err := a.load(ctx, cmd, args[0])
			if err != nil {
				return err
			}
			view := m.Direct()
			if reverse {
				view = m.Reverse()
			}
			partner, err := view.Get(args[1])
			if err != nil {
				a.logger.Debug(ctx, "lookup failed", logging.Field("key", args[1]), logging.Field("reverse", reverse))
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), partner+"\n")
			return err
		},
	}
	cmd.Flags().Bool(FlagReverse, false, `Look KEY up among the values instead of the keys.`)
	return cmd
}

func (a *app) invertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invert FILE",
		Short: "Print the document with keys and values swapped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.ContextWith(cmd.Context(), logging.Field("file", args[0]))
			m, err := a.load(ctx, cmd, args[0])
			if err != nil {
				return err
			}
			inverted, err := bimap.FromOrderedMap(m.Reverse().ToOrderedMap(), a.options()...)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), inverted)
		},
	}
}

func (a *app) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert FILE",
		Short: "Re-encode the document in the --format format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.ContextWith(cmd.Context(), logging.Field("file", args[0]))
			m, err := a.load(ctx, cmd, args[0])
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), m)
		},
	}
}

func (a *app) load(ctx context.Context, cmd *cobra.Command, path string) (_ *Mapping, returnErr error) {
	var in io.Reader = cmd.InOrStdin()
	if path != StdinPath {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer errorkit.Finish(&returnErr, f.Close)
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	format, err := a.inputFormat(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug(ctx, "loading mapping", logging.Field("format", format), logging.Field("bytes", len(data)))

	m := bimap.New(a.options()...)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, m)
	default:
		err = m.UnmarshalJSON(data)
	}
	if err != nil {
		a.logger.Error(ctx, "mapping document is rejected", logging.ErrField(err))
		return nil, err
	}
	return m, nil
}

func (a *app) inputFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return a.format()
	}
}

func (a *app) write(out io.Writer, m *Mapping) error {
	format, err := a.format()
	if err != nil {
		return err
	}
	if format == FormatYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	}
	data, err := bimapjsoniter.Marshal(jsoniter.ConfigCompatibleWithStandardLibrary, m)
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}
