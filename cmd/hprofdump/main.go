// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command hprofdump walks an HPROF heap-dump file and prints a summary of
// the records it contains. It exists to exercise the decoder end to end;
// it is not itself part of the decoding core.
package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"code.hybscloud.com/hprof"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle = lipgloss.NewStyle().Bold(true)
)

var (
	strictHeader bool
	littleEndian bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "hprofdump <file>",
	Short: "Summarize a JVM HPROF heap-dump file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func main() {
	rootCmd.Flags().BoolVar(&strictHeader, "strict-header", false, "reject unrecognized header magic strings")
	rootCmd.Flags().BoolVar(&littleEndian, "little-endian", false, "decode using little-endian byte order")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDump(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	logger := zap.NewNop()
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		l, err := cfg.Build()
		if err != nil {
			return err
		}
		logger = l
		defer logger.Sync()
	}

	opts := []hprof.Option{
		hprof.WithStrictHeader(strictHeader),
		hprof.WithLogger(logger),
	}
	if littleEndian {
		opts = append(opts, hprof.WithByteOrder(binary.LittleEndian))
	}

	dec, err := hprof.New(opts...)
	if err != nil {
		return err
	}

	s := newSummaryVisitor()
	if err := dec.Read(f, s); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("hprofdump summary"))
	printRow("header", s.magic)
	printRow("identifier size", fmt.Sprintf("%d bytes", s.idSize))
	printRow("strings", fmt.Sprintf("%d", s.strings))
	printRow("loaded classes", fmt.Sprintf("%d", s.classes))
	printRow("stack traces", fmt.Sprintf("%d", s.stackTraces))
	printRow("GC roots", fmt.Sprintf("%d", s.roots))
	printRow("class dumps", fmt.Sprintf("%d", s.classDumps))
	printRow("instances", fmt.Sprintf("%d", s.instances))
	printRow("object arrays", fmt.Sprintf("%d", s.objectArrays))
	printRow("primitive arrays", fmt.Sprintf("%d", s.primitiveArrays))
	return nil
}

func printRow(label, value string) {
	fmt.Printf("  %s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}
