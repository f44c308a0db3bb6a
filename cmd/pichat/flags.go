// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --config, --name, --persona, --print, --format, --save, --sessions-dir, --log-level, --version

package main

import "flag"

type cliArgs struct {
	configPath  string
	name        string
	personaName string
	print       bool
	prompt      string
	format      string
	save        bool
	sessionsDir string
	logLevel    string
	version     bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.configPath, "config", "", "Config file path (default ~/.pichat/config.json)")
	flag.StringVar(&args.name, "name", "", "Bot name override")
	flag.StringVar(&args.personaName, "persona", "", "Persona to activate (e.g., cheery)")
	flag.BoolVar(&args.print, "print", false, "Non-interactive print mode, one reply per stdin line")
	flag.StringVar(&args.prompt, "p", "", "Answer a single prompt and exit")
	flag.StringVar(&args.format, "format", "", "Print-mode output format: text, json, stream-json")
	flag.BoolVar(&args.save, "save", false, "Save the conversation transcript on exit")
	flag.BoolVar(&args.save, "s", false, "Shorthand for --save")
	flag.StringVar(&args.sessionsDir, "sessions-dir", "", "Session log directory override")
	flag.StringVar(&args.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}

// remaining returns the non-flag command-line arguments.
func (a cliArgs) remaining() []string {
	return flag.Args()
}
