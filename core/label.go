package core

import "fmt"

// LabelTable maps a label name to its index in the flat program.
type LabelTable map[string]int

// ResolveLabels scans the program once and records every label
// definition. A name defined twice is rejected.
func ResolveLabels(p Program) (LabelTable, error) {
	labels := make(LabelTable)

	for idx, inst := range p {
		name, ok := inst.Label()
		if !ok {
			continue
		}

		if name == "" {
			return nil, fmt.Errorf("instruction %d (%s:%d): %w", idx, inst.Source, inst.Line, ErrEmptyLabel)
		}

		if first, exists := labels[name]; exists {
			return nil, &LabelConflictError{Name: name, First: first, Second: idx}
		}

		labels[name] = idx
	}

	return labels, nil
}

// Lookup returns the index of a label, accepting "(name)" or "name".
func (t LabelTable) Lookup(target string) (int, error) {
	name := LabelName(target)
	idx, ok := t[name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUndefinedLabel, name)
	}
	return idx, nil
}
