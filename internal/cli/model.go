package cli

import (
	"fmt"

	"github.com/gogpu/workdist"
)

// ModelChoices lists the distribution models as "code: name" usage lines.
func ModelChoices() []string {
	models := workdist.Models()
	choices := make([]string, len(models))
	for i, m := range models {
		choices[i] = fmt.Sprintf("%d: %s", int(m), m)
	}
	return choices
}

// ParseModel parses a model given by code or by name.
func ParseModel(s, name string) (workdist.Model, error) {
	m, err := workdist.ParseModel(s)
	if err != nil {
		return 0, &UsageError{Code: ExitInvalid, Msg: fmt.Sprintf("Value, %s, given for %s is not a distribution model", s, name)}
	}
	return m, nil
}
