package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chromepdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render HTML or Markdown files to PDF with headless Chrome")
	fmt.Fprintln(w, "  doctor     Check the browser and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'chromepdf help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chromepdf render [flags] <input>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render HTML (.html, .htm) or Markdown (.md, .markdown) files to PDF.")
	fmt.Fprintln(w, "Relative asset URLs are made absolute against --base-url first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (.pdf) or directory")
	fmt.Fprintln(w, "      --merge               Append all inputs into one PDF, in argument order")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --page-size <s>       Named size: A0-A9, B0-B10, Letter, Legal, ...")
	fmt.Fprintln(w, "      --page-width <len>    Page width (needs --page-height, wins over --page-size)")
	fmt.Fprintln(w, "      --page-height <len>   Page height (needs --page-width)")
	fmt.Fprintln(w, "      --margin-top <len>    Top margin")
	fmt.Fprintln(w, "      --margin-bottom <len> Bottom margin")
	fmt.Fprintln(w, "      --margin-left <len>   Left margin")
	fmt.Fprintln(w, "      --margin-right <len>  Right margin")
	fmt.Fprintln(w, "                            Lengths: bare numbers are mm; mm, cm, in, px, pt accepted")
	fmt.Fprintln(w, "      --password <s>        Encrypt output (AES-256, user and owner password)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --base-url <url>      Site URL relative asset links resolve against")
	fmt.Fprintln(w, "      --sid <token>         Session token appended to rewritten asset URLs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Renderer:")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent browsers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-render timeout (default: 30s)")
	fmt.Fprintln(w, "      --browser <path>      Chrome/Chromium binary")
	fmt.Fprintln(w, "      --no-sandbox          Disable the Chrome sandbox")
	fmt.Fprintln(w, "      --default-renderer    Use the default renderer instead of the browser")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timings and debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CHROMEPDF_CONFIG, CHROMEPDF_BROWSER_BIN, CHROMEPDF_NO_SANDBOX, CHROMEPDF_TIMEOUT,")
	fmt.Fprintln(w, "  CHROMEPDF_WORKERS, CHROMEPDF_PAGE_SIZE, CHROMEPDF_PASSWORD, CHROMEPDF_BASE_URL,")
	fmt.Fprintln(w, "  CHROMEPDF_SID, CHROMEPDF_LOG_LEVEL")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chromepdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check browser discovery, sandbox, container and CI detection,")
	fmt.Fprintln(w, "and that the temp directory is writable.")
}

// runHelp prints help for a specific command and returns an exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: chromepdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: chromepdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
