package kernelsat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseDIMACS parses text in the DIMACS CNF format.
//
// For convenience, a few non-standard variations are accepted:
//
//   - Comments (lines beginning with 'c') may appear anywhere, not just in the
//     preamble.
//   - The problem line may be missing.
//
// Parser errors are informational only, so they stay plain
// errors/fmt.Errorf rather than the engine's pkg/errors-wrapped kinds.
func ParseDIMACS(r io.Reader) ([][]int, error) {
	var problem struct {
		vars    int
		clauses int
	}
	var clauses [][]int
	var clause []int
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		// Some CNF formats attach extra data in a trailer after a line
		// containing a single %.
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			if len(clauses) > 0 {
				return nil, errors.New("problem line appears after clauses")
			}
			if problem.vars > 0 {
				return nil, errors.New("multiple problem lines")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return nil, fmt.Errorf("malformed problem line %q", line)
			}
			if fields[0] != "p" {
				return nil, fmt.Errorf("problem line starts with unexpected signifier %q", fields[0])
			}
			if fields[1] != "cnf" {
				return nil, fmt.Errorf("only cnf supported; got %q", fields[1])
			}
			var err error
			problem.vars, err = strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("malformed #vars in problem line: %s", err)
			}
			problem.clauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, fmt.Errorf("malformed #clauses in problem line: %s", err)
			}
			if problem.vars < 0 {
				return nil, fmt.Errorf("invalid #vars %d", problem.vars)
			}
			if problem.clauses < 0 {
				return nil, fmt.Errorf("invalid #clauses %d", problem.clauses)
			}
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid variable: %s", err)
			}
			if n == 0 {
				clauses = append(clauses, clause)
				clause = nil
			} else {
				clause = append(clause, n)
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(clause) > 0 {
		clauses = append(clauses, clause)
	}

	if problem.vars > 0 {
		vars := make(map[int]struct{})
		for _, clause := range clauses {
			for _, v := range clause {
				if v < 0 {
					v = -v
				}
				if v > problem.vars {
					return nil, fmt.Errorf("formula contains var %d, but problem line asserts %d vars (only vars in [1, %d] expected)",
						v, problem.vars, problem.vars)
				}
				vars[v] = struct{}{}
			}
		}
		// Allow some vars to be missing.
		if len(vars) > problem.vars {
			return nil, fmt.Errorf("problem line specifies %d vars, but there are %d", problem.vars, len(vars))
		}
		if len(clauses) != problem.clauses {
			return nil, fmt.Errorf("problem line specifies %d clauses, but there are %d", problem.clauses, len(clauses))
		}
	}
	return clauses, nil
}

// WriteDIMACS serializes clauses back to DIMACS CNF text: a "p cnf N M"
// header (N the highest variable magnitude actually referenced, M the
// clause count), then one line per clause, space-separated literals
// terminated by a trailing 0, empty clauses written as a bare "0".
//
// Package tests pin this exact round-trip format.
func WriteDIMACS(w io.Writer, clauses [][]int) error {
	nvars := 0
	for _, cl := range clauses {
		for _, v := range cl {
			if v < 0 {
				v = -v
			}
			if v > nvars {
				nvars = v
			}
		}
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", nvars, len(clauses)); err != nil {
		return err
	}
	for _, cl := range clauses {
		var b strings.Builder
		for _, v := range cl {
			fmt.Fprintf(&b, "%d ", v)
		}
		b.WriteString("0")
		if _, err := fmt.Fprintln(bw, b.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadInteractive drives a line-at-a-time DIMACS prompt over r, writing
// progress/error messages to w, and returns the accumulated problem in the
// same [][]int form as ParseDIMACS. Supplemented from
// original_source/src/main.rs's interactive loop: a header line ("p cnf N
// M") is required first, then exactly N... no — exactly M clauses follow,
// each its own run of lines terminated by a literal 0. Unlike ParseDIMACS,
// malformed input here is a hard error (the interactive prompt has no
// later data to recover from), matching the original's one-shot error
// messages.
func ReadInteractive(r io.Reader, w io.Writer) ([][]int, error) {
	fmt.Fprintln(w, "Enter satisfiability problem in DIMACS format.")
	fmt.Fprintln(w, "Press Ctrl-D to quit.")

	s := bufio.NewScanner(r)

	nvars, ncls, err := readInteractiveHeader(s, w)
	if err != nil {
		return nil, err
	}
	if nvars < 0 || ncls < 0 {
		return nil, nil
	}

	var clauses [][]int
	for len(clauses) < ncls {
		cl, err := readInteractiveClause(s)
		if err != nil {
			fmt.Fprintln(w, err)
			return nil, err
		}
		if cl == nil {
			return nil, io.ErrUnexpectedEOF
		}
		clauses = append(clauses, cl)
	}
	return clauses, nil
}

// readInteractiveHeader reads lines (skipping "c" comments) until it finds
// a "p cnf N M" header, returning nvars<0 as a sentinel for "no header
// found before EOF" (the original's final "Abort? Ok..." branch).
func readInteractiveHeader(s *bufio.Scanner, w io.Writer) (nvars, ncls int, err error) {
	for s.Scan() {
		line := s.Text()
		if strings.HasPrefix(line, "c") {
			continue
		}
		if !strings.HasPrefix(line, "p cnf") {
			fmt.Fprintln(w, "Input must start with a header.")
			return 0, 0, errors.New("input must start with a header")
		}
		fields := strings.Fields(strings.TrimPrefix(line, "p cnf"))
		if len(fields) != 2 {
			fmt.Fprintln(w, "Input of header is malformed.")
			return 0, 0, errors.New("malformed header")
		}
		nvars, err = strconv.Atoi(fields[0])
		if err != nil {
			fmt.Fprintf(w, "Input of '%s' is no integer.\n", fields[0])
			return 0, 0, err
		}
		ncls, err = strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(w, "Input of '%s' is no integer.\n", fields[1])
			return 0, 0, err
		}
		if nvars < 0 || ncls < 0 {
			fmt.Fprintln(w, "Number of variables and clauses must not be negative.")
			return 0, 0, errors.New("negative count in header")
		}
		return nvars, ncls, nil
	}
	fmt.Fprintln(w, "Abort? Ok...")
	return -1, -1, nil
}

// readInteractiveClause accumulates literals across one or more lines until
// a trailing 0 terminates the clause, returning (nil, nil) on clean EOF.
func readInteractiveClause(s *bufio.Scanner) ([]int, error) {
	var lits []int
	for s.Scan() {
		line := s.Text()
		if line == "" {
			return nil, errors.New("empty lines are disallowed")
		}
		fields := strings.Fields(line)
		nums := make([]int, len(fields))
		for i, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.New("incorrect clause formulation")
			}
			nums[i] = n
		}
		if len(nums) > 0 && nums[len(nums)-1] == 0 {
			lits = append(lits, nums[:len(nums)-1]...)
			if lits == nil {
				lits = []int{} // empty clause; nil is reserved for EOF
			}
			return lits, nil
		}
		lits = append(lits, nums...)
	}
	return nil, nil
}
