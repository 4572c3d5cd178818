package simclient

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/prost-go/prost"
	"github.com/prost-go/prost/state"
	"github.com/prost-go/prost/task"
)

// Translator maps the simulator's grounded-fluent vocabulary
// ("name(arg1, arg2)") onto the planner's internal state-fluent
// indices, mirroring ippc_client.cc's stateVariableIndices /
// stateVariableValues maps.
type Translator struct {
	index  map[string]int
	domain [][]float64
}

// NewTranslator builds the name-to-index table from a task's ordered
// state-fluent list.
func NewTranslator(stateFluents []task.FluentInfo) *Translator {
	t := &Translator{
		index:  make(map[string]int, len(stateFluents)),
		domain: make([][]float64, len(stateFluents)),
	}
	for _, f := range stateFluents {
		t.index[f.Name] = f.Index
		t.domain[f.Index] = f.Domain
	}
	return t
}

// fluentKey reproduces readVariable's "name(arg1, arg2)" formatting,
// with the no-argument special case the original calls out as a
// rddlsim quirk: a zero-arity fluent is reported as "name()" with the
// trailing "()" stripped rather than kept.
func fluentKey(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

// Apply folds turn's observed fluents into values, a mutable copy of a
// state.State's Values vector. Unknown fluent names (not part of the
// task's state-fluent set, e.g. non-fluents reported by a simulator
// that doesn't distinguish them) are ignored.
func (t *Translator) Apply(values []float64, turn Turn) error {
	for _, f := range turn.Observed {
		idx, ok := t.index[fluentKey(f.Name, f.Args)]
		if !ok {
			continue
		}
		v, err := t.decodeValue(idx, f.Value)
		if err != nil {
			return errors.Wrapf(err, "observed-fluent %q", f.Name)
		}
		values[idx] = v
	}
	return nil
}

// decodeValue resolves one reported value against fluent idx's domain:
// boolean domains ({0,1}) accept "true"/"false", everything else is
// parsed as a float.
func (t *Translator) decodeValue(idx int, raw string) (float64, error) {
	if isBooleanDomain(t.domain[idx]) {
		switch raw {
		case "true":
			return 1, nil
		case "false":
			return 0, nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrap(prost.ErrMalformedDescriptor, raw)
	}
	return v, nil
}

func isBooleanDomain(domain []float64) bool {
	return len(domain) == 2 && domain[0] == 0 && domain[1] == 1
}

// NextState applies turn onto prev, producing the successor state via
// state.NewState so its hash keys stay consistent with table.
func (t *Translator) NextState(prev state.State, turn Turn, table *state.HashKeyTable) (state.State, error) {
	values := append([]float64(nil), prev.Values...)
	if err := t.Apply(values, turn); err != nil {
		return state.State{}, err
	}
	return state.NewState(values, prev.StepsToGo-1, table), nil
}
