// Package convert implements the main program action: arguments are parsed,
// converted and rendered.
package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"fracbin/common"
	"fracbin/config"
	"fracbin/fraction"
	"fracbin/output"
	"fracbin/state"
	"fracbin/utils/debug"
)

// Run converts every command line argument and renders results to program
// output.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	opts := outputOptions(env.Cfg, env.Converter)
	if cmd.IsSet("to") {
		format, err := common.ParseReportFmt(cmd.String("to"))
		if err != nil {
			log.Warn("Unknown output format requested, switching to table", zap.Error(err))
			format = common.ReportFmtTable
		}
		opts.Format = format
	}

	log.Debug("Processing starting", zap.Int("arguments", cmd.NArg()), zap.Stringer("format", opts.Format))
	defer func(start time.Time) {
		log.Debug("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	out := env.Out
	var captured *bytes.Buffer
	if env.Rpt != nil {
		captured = new(bytes.Buffer)
		out = io.MultiWriter(env.Out, captured)
	}

	if err := process(ctx, cmd.Args().Slice(), env.Converter, opts, out, log); err != nil {
		return err
	}
	if captured != nil {
		env.Rpt.StoreData("output.txt", captured.Bytes())
		env.Rpt.StoreData("trace.txt", []byte(trace(cmd.Args().Slice(), env.Converter)))
	}
	return nil
}

func outputOptions(cfg *config.Config, conv *fraction.Converter) output.Options {
	opts := output.DefaultOptions()
	opts.Places = conv.Limit()
	if cfg == nil {
		return opts
	}
	opts.Format = cfg.Output.Format
	opts.DecimalTitle = cfg.Output.Headers.Decimal
	opts.BinaryTitle = cfg.Output.Headers.Binary
	opts.RowTemplate = cfg.Output.RowTemplate
	return opts
}

var errNotDecimal = errors.New("not a decimal number")

// parseValue accepts plain decimal notation only. Hexadecimal floats and digit
// separators strconv understands are refused.
func parseValue(arg string) (float64, error) {
	digits := strings.TrimLeft(arg, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") || strings.ContainsRune(arg, '_') {
		return 0, errNotDecimal
	}
	return strconv.ParseFloat(arg, 64)
}

// process handles the conversion independently of CLI framework.
func process(ctx context.Context, args []string, conv *fraction.Converter, opts output.Options, w io.Writer, log *zap.Logger) error {
	rows, err := collect(ctx, args, conv, log)
	if err != nil {
		return err
	}
	return output.Render(w, rows, opts)
}

// collect converts arguments in order. Arguments which are not numbers or are
// not fractions converter accepts are left out, they are only mentioned in
// debug log.
func collect(ctx context.Context, args []string, conv *fraction.Converter, log *zap.Logger) ([]output.Row, error) {
	rows := make([]output.Row, 0, len(args))
	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v, err := parseValue(arg)
		if err != nil {
			log.Debug("Ignoring argument, not a number", zap.String("arg", arg), zap.Error(err))
			continue
		}
		bin, err := conv.Convert(v)
		if err != nil {
			log.Debug("Ignoring argument", zap.String("arg", arg), zap.Error(err))
			continue
		}
		rows = append(rows, output.Row{Value: v, Binary: bin})
	}
	return rows, nil
}

// trace describes what happened to every argument.
func trace(args []string, conv *fraction.Converter) string {
	tw := debug.NewTreeWriter()
	for _, arg := range args {
		tw.TextBlock(0, "argument", arg)
		v, err := parseValue(arg)
		if err != nil {
			tw.Line(1, "dropped: %v", err)
			continue
		}
		steps, err := conv.Steps(v)
		if err != nil {
			tw.Line(1, "dropped: %v", err)
			continue
		}
		for i, s := range steps {
			tw.Line(1, "digit %d: %v -> %d, remainder %v", i+1, s.Product, s.Digit, s.Remainder)
		}
	}
	return tw.String()
}
