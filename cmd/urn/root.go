package main

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ghettovoice/urn"
	"github.com/ghettovoice/urn/internal/errorutil"
	"github.com/ghettovoice/urn/internal/log"
)

//go:generate go tool errtrace -w .

// Config keys, also available as URN_MODE, URN_OUTPUT, URN_LOG_LEVEL and URN_DEV.
const (
	keyConfig   = "config"
	keyMode     = "mode"
	keyOutput   = "output"
	keyLogLevel = "log-level"
	keyDev      = "dev"
)

const errUsage errorutil.Error = "invalid usage"

// app holds the settings resolved for a single command run.
type app struct {
	mode   urn.Mode
	output string
	logger *slog.Logger
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	a := new(app)
	cmd := &cobra.Command{
		Use:   "urn",
		Short: "Parse, check and normalize RFC 8141 URNs",
		Long: `urn works with Uniform Resource Names as defined by RFC 8141.

URNs are taken from the arguments, or read line by line from stdin.

  urn parse urn:isbn:0451450523
  echo 'urn:ISBN:A%2Fb' | urn normalize`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return errtrace.Wrap(a.configure(cmd, v))
		},
	}

	fs := cmd.PersistentFlags()
	fs.String(keyConfig, "", "config file in YAML format")
	fs.String(keyMode, urn.Escaped.String(), "NSS input mode: escaped or unescaped")
	fs.StringP(keyOutput, "o", "text", "output format: text, json or yaml")
	fs.String(keyLogLevel, "warn", "log level: debug, info, warn or error")
	fs.Bool(keyDev, false, "developer log output")
	for _, key := range []string{keyMode, keyOutput, keyLogLevel, keyDev} {
		_ = v.BindPFlag(key, fs.Lookup(key))
	}

	v.SetEnvPrefix("URN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.AddCommand(
		newParseCmd(a),
		newCheckCmd(a),
		newNormalizeCmd(a),
	)
	return cmd
}

func (a *app) configure(cmd *cobra.Command, v *viper.Viper) error {
	if cfg, _ := cmd.Flags().GetString(keyConfig); cfg != "" {
		v.SetConfigFile(cfg)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return errtrace.Wrap(errorutil.NewWrapperError(errUsage, err))
		}
	}

	if err := log.SetLevel(v.GetString(keyLogLevel)); err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(errUsage, err))
	}
	a.logger = log.New(cmd.ErrOrStderr(), v.GetBool(keyDev))

	if err := a.mode.UnmarshalText([]byte(v.GetString(keyMode))); err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(errUsage, err))
	}

	switch out := strings.ToLower(v.GetString(keyOutput)); out {
	case "text", "json", "yaml":
		a.output = out
	default:
		return errtrace.Wrap(errorutil.NewWrapperError(errUsage, "unknown output format %q", out))
	}

	a.logger.Debug("configuration loaded",
		slog.String("mode", a.mode.String()),
		slog.String("output", a.output),
		slog.String("config", v.ConfigFileUsed()),
	)
	return nil
}

// inputs yields URN candidates from args, or from non-blank lines of r when args are empty.
func inputs(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return lines, nil
}
