// ubpf - static verifier and disassembler for eBPF bytecode.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpsamaroo/ubpf/ebpf"
	"github.com/jpsamaroo/ubpf/log"
	"github.com/jpsamaroo/ubpf/verifier"
)

var (
	Version = "dev"
	Commit  = "none"
)

func loadProgram(path string) (ebpf.Program, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	prog, err := ebpf.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	log.Debug(log.LoaderModule, "program loaded", "path", path, "instructions", len(prog))
	return prog, nil
}

func main() {
	var (
		logLevel     string
		debugModules string
	)

	rootCmd := &cobra.Command{
		Use:     "ubpf",
		Short:   "Static verifier for eBPF bytecode",
		Version: fmt.Sprintf("%s (%s)", Version, Commit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.InitLogger(logLevel)
			for _, m := range strings.Split(debugModules, ",") {
				if m = strings.TrimSpace(m); m != "" {
					log.EnableModule(m)
				}
			}
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace|debug|info|warn|error|crit)")
	rootCmd.PersistentFlags().StringVar(&debugModules, "debug", "", "comma-separated log modules to enable")

	verifyCmd := &cobra.Command{
		Use:   "verify <prog.bin>",
		Short: "Check a program for control-flow and register-use violations",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			prog, err := loadProgram(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			if err := verifier.Verify(prog); err != nil {
				fmt.Fprintf(os.Stderr, "%v\nFailed verification\n", err)
				os.Exit(1)
			}
			fmt.Printf("%s: OK, %d instructions\n", args[0], len(prog))
		},
	}

	disasmCmd := &cobra.Command{
		Use:   "disasm <prog.bin>",
		Short: "Print a numbered disassembly of a program",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			prog, err := loadProgram(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			for _, line := range prog.Disassemble() {
				fmt.Println(line)
			}
		},
	}

	cfgCmd := &cobra.Command{
		Use:   "cfg <prog.bin>",
		Short: "Print the control-flow tree the verifier walks",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			prog, err := loadProgram(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			tree, err := verifier.ControlFlowTree(prog)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			fmt.Println(tree.String())
		},
	}

	rootCmd.AddCommand(verifyCmd, disasmCmd, cfgCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
