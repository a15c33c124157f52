package parse

import "github.com/google/shlex"

// Split breaks s into plain argument words using shell-style lexing rules.
// It carries no offset information and is intended for callers which only
// need the resulting words, such as the quoting simulation.
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}
