package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/urn"
	"github.com/ghettovoice/urn/internal/errorutil"
)

const errInvalidInput errorutil.Error = "invalid input"

type param struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

func params(ps urn.Params) []param {
	if len(ps) == 0 {
		return nil
	}
	out := make([]param, 0, len(ps))
	for k, v := range ps.All() {
		out = append(out, param{k, v})
	}
	return out
}

// record is the parse command output for a single URN.
type record struct {
	Input        string  `json:"input" yaml:"input"`
	URN          string  `json:"urn,omitempty" yaml:"urn,omitempty"`
	NID          string  `json:"nid,omitempty" yaml:"nid,omitempty"`
	NSS          string  `json:"nss,omitempty" yaml:"nss,omitempty"`
	NSSUnescaped string  `json:"nss_unescaped,omitempty" yaml:"nss_unescaped,omitempty"`
	Resolution   []param `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Query        []param `json:"query,omitempty" yaml:"query,omitempty"`
	Fragment     string  `json:"fragment,omitempty" yaml:"fragment,omitempty"`
	Key          string  `json:"key,omitempty" yaml:"key,omitempty"`
	Error        string  `json:"error,omitempty" yaml:"error,omitempty"`
}

func newRecord(in string, u *urn.URN, err error) record {
	if err != nil {
		return record{Input: in, Error: err.Error()}
	}
	return record{
		Input:        in,
		URN:          u.String(),
		NID:          u.NID().String(),
		NSS:          u.NSS().Escaped(),
		NSSUnescaped: u.NSS().Unescaped(),
		Resolution:   params(u.Resolution()),
		Query:        params(u.Query()),
		Fragment:     u.Fragment(),
		Key:          u.Key(),
	}
}

func (a *app) write(w io.Writer, recs []record, text func(*tabwriter.Writer, record)) error {
	switch a.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errtrace.Wrap(enc.Encode(recs))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return errtrace.Wrap(err)
		}
		return errtrace.Wrap(enc.Close())
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, rec := range recs {
			text(tw, rec)
		}
		return errtrace.Wrap(tw.Flush())
	}
}

// run parses every input and reports errInvalidInput if any of them failed.
func (a *app) run(cmd *cobra.Command, args []string, text func(*tabwriter.Writer, record)) error {
	ins, err := inputs(args, cmd.InOrStdin())
	if err != nil {
		return errtrace.Wrap(err)
	}

	var failed int
	recs := make([]record, 0, len(ins))
	for _, in := range ins {
		u, err := urn.ParseWithMode(in, a.mode)
		if err != nil {
			failed++
			a.logger.Debug("URN rejected", slog.String("input", in), slog.Any("error", err))
		} else {
			a.logger.Debug("URN parsed", slog.Any("urn", u))
		}
		recs = append(recs, newRecord(in, u, err))
	}

	if err := a.write(cmd.OutOrStdout(), recs, text); err != nil {
		return errtrace.Wrap(err)
	}
	if failed > 0 {
		return errtrace.Wrap(errorutil.NewWrapperError(errInvalidInput, "%d of %d URNs are malformed", failed, len(recs)))
	}
	return nil
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [urn...]",
		Short: "Decompose URNs into components",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errtrace.Wrap(a.run(cmd, args, func(w *tabwriter.Writer, rec record) {
				if rec.Error != "" {
					fmt.Fprintf(w, "%s\terror\t%s\n", rec.Input, rec.Error)
					return
				}
				fmt.Fprintf(w, "%s\turn\t%s\n", rec.Input, rec.URN)
				fmt.Fprintf(w, "\tnid\t%s\n", rec.NID)
				fmt.Fprintf(w, "\tnss\t%s\n", rec.NSS)
				fmt.Fprintf(w, "\tnss_unescaped\t%s\n", rec.NSSUnescaped)
				for _, p := range rec.Resolution {
					fmt.Fprintf(w, "\tresolution\t%s=%s\n", p.Key, p.Value)
				}
				for _, p := range rec.Query {
					fmt.Fprintf(w, "\tquery\t%s=%s\n", p.Key, p.Value)
				}
				if rec.Fragment != "" {
					fmt.Fprintf(w, "\tfragment\t%s\n", rec.Fragment)
				}
			}))
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [urn...]",
		Short: "Report whether URNs are well-formed",
		Long:  "check prints one line per URN and exits with a non-zero status if any of them is malformed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errtrace.Wrap(a.run(cmd, args, func(w *tabwriter.Writer, rec record) {
				if rec.Error != "" {
					fmt.Fprintf(w, "%s\tinvalid\t%s\n", rec.Input, rec.Error)
					return
				}
				fmt.Fprintf(w, "%s\tok\n", rec.Input)
			}))
		},
	}
}

func newNormalizeCmd(a *app) *cobra.Command {
	var (
		comps     urn.Components
		unescaped bool
	)
	cmd := &cobra.Command{
		Use:   "normalize [urn...]",
		Short: "Print URNs in the canonical form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if s, _ := cmd.Flags().GetString("components"); s != "" {
				if err := comps.UnmarshalText([]byte(s)); err != nil {
					return errtrace.Wrap(errorutil.NewWrapperError(errUsage, err))
				}
			}
			opts := &urn.RenderOptions{Components: comps}
			if unescaped {
				opts.Mode = urn.Unescaped
			}

			ins, err := inputs(args, cmd.InOrStdin())
			if err != nil {
				return errtrace.Wrap(err)
			}
			out := cmd.OutOrStdout()
			for _, in := range ins {
				u, err := urn.ParseWithMode(in, a.mode)
				if err != nil {
					return errtrace.Wrap(errorutil.NewWrapperError(errInvalidInput, err))
				}
				if _, err := fmt.Fprintln(out, u.Render(opts)); err != nil {
					return errtrace.Wrap(err)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("components", "", `components to print, for example "nid|nss" (default all)`)
	cmd.Flags().BoolVar(&unescaped, "unescaped", false, "print the NSS unescaped")
	return cmd
}
