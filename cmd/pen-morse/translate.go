package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/config"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/message"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/translate"
	grpctransport "github.com/Pen-123/Pen-Morse-Code-Translator/internal/transport/grpc"
)

// TranslateParams are the flags of the encode and decode commands.
type TranslateParams struct {
	Text   []string `pos:"true" optional:"true" help:"Text to translate. If none provided, reads lines from stdin."`
	Remote string   `short:"r" optional:"true" help:"Address of a pen-morse gRPC transport; translate locally when empty."`
}

// ExportParams are the flags of the export command.
type ExportParams struct {
	Morse  []string `pos:"true" optional:"true" help:"Morse to render. If none provided, reads stdin."`
	Output string   `short:"o" help:"Output file, or - for stdout." default:"morse.wav"`
}

func encodeCmd() *cobra.Command { return translateCmd("encode", "Encode text as Morse code", message.ModeEncode) }
func decodeCmd() *cobra.Command { return translateCmd("decode", "Decode Morse code to text", message.ModeDecode) }

func translateCmd(use, short string, mode message.Mode) *cobra.Command {
	return boa.CmdT[TranslateParams]{
		Use:         use,
		Short:       short,
		ParamEnrich: paramEnricher(),
		RunFunc: func(params *TranslateParams, cmd *cobra.Command, args []string) {
			setupCLILogging()
			exitOnError(use, runTranslate(commandContext(cmd), mode, params, os.Stdin, cmd.OutOrStdout()))
		},
	}.ToCobra()
}

func exportCmd() *cobra.Command {
	return boa.CmdT[ExportParams]{
		Use:         "export",
		Short:       "Render Morse code as a WAV file",
		ParamEnrich: paramEnricher(),
		RunFunc: func(params *ExportParams, cmd *cobra.Command, args []string) {
			setupCLILogging()
			exitOnError("export", runExport(commandContext(cmd), params, os.Stdin, cmd.OutOrStdout()))
		},
	}.ToCobra()
}

// translateFunc turns one input line into its translation.
type translateFunc func(ctx context.Context, data string) (string, error)

func runTranslate(ctx context.Context, mode message.Mode, params *TranslateParams, in io.Reader, out io.Writer) error {
	fn, closeFn, err := translator(mode, params.Remote)
	if err != nil {
		return err
	}
	defer closeFn()

	if len(params.Text) > 0 {
		res, err := fn(ctx, strings.Join(params.Text, " "))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, res)
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		res, err := fn(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, res); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// translator returns a local translator, or a gRPC client when remote is set.
func translator(mode message.Mode, remote string) (translateFunc, func(), error) {
	if remote == "" {
		svc := translate.New(nil)
		return func(ctx context.Context, data string) (string, error) {
			res, err := svc.Translate(ctx, &message.TranslateRequest{Mode: mode, Data: data, Timestamp: time.Now()})
			if err != nil {
				return "", err
			}
			return res.Result, nil
		}, func() {}, nil
	}

	client, err := grpctransport.Dial(remote)
	if err != nil {
		return nil, nil, err
	}
	return func(ctx context.Context, data string) (string, error) {
		res, err := client.Translate(ctx, &message.TranslateRequest{Mode: mode, Data: data})
		if err != nil {
			return "", fmt.Errorf("remote translate: %w", err)
		}
		return res.Result, nil
	}, func() { _ = client.Close() }, nil
}

func runExport(ctx context.Context, params *ExportParams, in io.Reader, stdout io.Writer) error {
	pattern := strings.Join(params.Morse, " ")
	if len(params.Morse) == 0 {
		b, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		pattern = string(b)
	}

	audio, err := translate.New(nil).Export(ctx, pattern)
	if err != nil {
		return err
	}

	if params.Output == "-" {
		_, err = stdout.Write(audio.Bytes)
		return err
	}
	if err := os.WriteFile(params.Output, audio.Bytes, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", params.Output, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d bytes, %s)\n", params.Output, len(audio.Bytes), audio.Duration)
	return nil
}

// setupCLILogging keeps one-shot commands quiet unless something goes wrong.
func setupCLILogging() {
	config.SetupLogging(config.LoggingConfig{Level: "warn", Format: "text"}, os.Stderr)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
