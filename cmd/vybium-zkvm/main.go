package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	vybiumzkvm "github.com/vybium/vybium-zkvm/pkg/vybium-zkvm"
)

// ProgramInput is the on-disk program format: a pc base and a list of
// instructions with mnemonic opcodes.
type ProgramInput struct {
	PCBase       uint32             `json:"pc_base"`
	Instructions []InstructionInput `json:"instructions"`
}

type InstructionInput struct {
	Opcode string `json:"opcode"`
	A      uint64 `json:"a"`
	B      uint64 `json:"b"`
	C      uint64 `json:"c"`
	D      uint64 `json:"d"`
	E      uint64 `json:"e"`
	F      uint64 `json:"f"`
}

var opcodesByName = map[string]vybiumzkvm.Opcode{
	"TERMINATE":   vybiumzkvm.Terminate,
	"ADD":         vybiumzkvm.Add,
	"SUB":         vybiumzkvm.Sub,
	"XOR":         vybiumzkvm.Xor,
	"OR":          vybiumzkvm.Or,
	"AND":         vybiumzkvm.And,
	"MUL":         vybiumzkvm.Mul,
	"JAL":         vybiumzkvm.Jal,
	"HINT_STOREW": vybiumzkvm.HintStoreW,
}

func loadProgram(path string) (*vybiumzkvm.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read program file: %w", err)
	}

	var input ProgramInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("could not parse program file %s: %w", path, err)
	}

	program := vybiumzkvm.NewProgram()
	program.PCBase = input.PCBase
	for i, inst := range input.Instructions {
		op, ok := opcodesByName[strings.ToUpper(inst.Opcode)]
		if !ok {
			return nil, fmt.Errorf("instruction %d: unknown opcode %q", i, inst.Opcode)
		}
		program.AddInstruction(vybiumzkvm.Instruction{
			Opcode: op,
			A:      vybiumzkvm.Operand(inst.A),
			B:      vybiumzkvm.Operand(inst.B),
			C:      vybiumzkvm.Operand(inst.C),
			D:      vybiumzkvm.Operand(inst.D),
			E:      vybiumzkvm.Operand(inst.E),
			F:      vybiumzkvm.Operand(inst.F),
		})
	}
	return program, nil
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		input      []int64
		hints      []int64
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "run <program.json>",
		Short: "Execute a program and print its trace summary and memory commitment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := vybiumzkvm.DefaultConfig()
			if configPath != "" {
				var err error
				config, err = vybiumzkvm.ReadConfigFile(configPath)
				if err != nil {
					return err
				}
			}

			program, err := loadProgram(args[0])
			if err != nil {
				return err
			}

			vm, err := vybiumzkvm.NewVM(config)
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			vm.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			result, err := vm.Execute(program, toStream(input), toStream(hints))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "program id: %x\n", result.ProgramID)
			fmt.Fprintf(out, "segments:   %d\n", len(result.Segments))
			for i, segment := range result.Segments {
				fmt.Fprintf(out, "  segment %d: %d instructions\n", i, segment.Instret)
				for _, chip := range segment.Traces {
					fmt.Fprintf(out, "    %-16s %d x %d\n", chip.Name, chip.Trace.Height, chip.Trace.Width)
				}
			}
			fmt.Fprintf(out, "final pc:   %d\n", result.FinalState.PC)
			fmt.Fprintf(out, "commitment: %v\n", vm.CommitMemory(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().Int64SliceVar(&input, "input", nil, "public input stream")
	cmd.Flags().Int64SliceVar(&hints, "hints", nil, "hint stream")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-segment progress")
	return cmd
}

func toStream(values []int64) []uint64 {
	out := make([]uint64, len(values))
	for i, v := range values {
		out[i] = uint64(v)
	}
	return out
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vybium-zkvm",
		Short:         "Vybium zkVM execution and trace generation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
