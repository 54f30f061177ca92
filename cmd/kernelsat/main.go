// Command kernelsat reads a CNF formula in DIMACS format and reports
// whether it is satisfiable, using cobra/pflag-based argument parsing.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gopherlabs/kernelsat"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	var verbose bool
	var interactive bool

	root := &cobra.Command{
		Use:   "kernelsat [input.cnf]",
		Short: "kernelsat: a kernelizing SAT solver",
		Long: `kernelsat reads a single problem specification in the DIMACS CNF format.
It writes the output in the conventional way: either the first line is UNSAT,
or else the first line is SAT and the second line gives the assignments in the
same format as an input clause.

If no input file is given, kernelsat reads from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, verbose, interactive)
		},
	}
	var flags *pflag.FlagSet = root.Flags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log solver statistics to stderr")
	flags.BoolVar(&interactive, "interactive", false, "read the problem as a line-at-a-time interactive prompt instead of a whole DIMACS file")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string, verbose, interactive bool) error {
	var r io.Reader = os.Stdin
	if len(args) >= 1 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		r = f
	}

	var (
		cnf [][]int
		err error
	)
	if interactive {
		cnf, err = kernelsat.ReadInteractive(r, cmd.OutOrStdout())
	} else {
		cnf, err = kernelsat.ParseDIMACS(r)
	}
	if err != nil {
		log.Fatalln("Error reading input as DIMACS CNF:", err)
	}

	soln, stats, ok := kernelsat.Solve(cnf)
	if verbose {
		logrus.WithFields(logrus.Fields{
			"solved_by_simplification": stats.SolvedBySimplification,
			"num_decisions":            stats.NumDecisions,
			"num_kernelize_rounds":     stats.NumKernelizeRounds,
			"num_components":           stats.NumComponents,
		}).Info("solve finished")
	}

	if !ok {
		fmt.Println("UNSAT")
		return nil
	}
	fmt.Println("SAT")
	for i, v := range soln {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(v)
	}
	fmt.Println()
	return nil
}
