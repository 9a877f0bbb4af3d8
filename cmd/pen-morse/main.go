// Pen-morse translates text to International Morse Code and back, and renders
// Morse as WAV audio. It serves a web page, a JSON/WebSocket API and a gRPC
// service, and works as a one-shot command-line tool.
//
// Usage:
//
//	pen-morse [serve] [--config /path/to/pen-morse.yaml]
//	pen-morse encode HELLO WORLD
//	pen-morse decode ".... .. / - .... . .-. ."
//	pen-morse export -o sos.wav "... --- ..."
//
// @title       Pen Morse Code Translator API
// @version     1.0
// @description Translates text to International Morse Code and back, and renders Morse as WAV audio.
// @license.name MIT
// @BasePath    /
package main

import (
	"fmt"
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	boa.CmdT[ServeParams]{
		Use:         "pen-morse",
		Short:       "Pen Federation Morse code translator",
		Long:        "Translate text to Morse code and back, and export Morse as WAV audio. Without a subcommand the service is started.",
		Version:     appVersion(),
		ParamEnrich: paramEnricher(),
		SubCmds: []*cobra.Command{
			serveCmd(),
			encodeCmd(),
			decodeCmd(),
			exportCmd(),
			versionCmd(),
		},
		RunFunc: func(params *ServeParams, cmd *cobra.Command, args []string) {
			exitOnError("serve", runServe(commandContext(cmd), params))
		},
	}.Run()
}

func paramEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

func versionCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "version",
		Short: "Print the version",
		RunFunc: func(_ *boa.NoParams, cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pen-morse %s\n", appVersion())
		},
	}.ToCobra()
}

func appVersion() string {
	if version != "dev" {
		return version
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" || bi.Main.Version == "(devel)" {
		return version
	}
	return bi.Main.Version
}
