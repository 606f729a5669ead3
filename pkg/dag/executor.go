package dag

import (
	"sort"
)

type Executor struct {
	Registry *ComponentGraphRegistry
}

// Execute runs every component of the dependency config exactly once, one at
// a time, in topological order. Components are never run concurrently: the
// pipeline request they mutate is shared, and the downstream feature matrix
// depends on strict index-order processing.
func (e *Executor) Execute(dagConfig map[string][]string, request interface{}) error {

	if request == nil || len(dagConfig) == 0 {
		return &InvalidDagError{ErrorMsg: "Either dag config or executor request is invalid"}
	}
	dagTopology, err := e.Registry.getDagTopology(dagConfig)
	if err != nil {
		return err
	}
	return executeDag(dagTopology, request)
}

func executeDag(dagTopology *Topology, request interface{}) error {

	inDegreeMap := make(map[string]int, len(dagTopology.ComponentInDegreeMap))
	for component, inDegree := range dagTopology.ComponentInDegreeMap {
		inDegreeMap[component] = inDegree
	}

	ready := append([]string(nil), dagTopology.ZeroInDegreeComponents...)
	sort.Strings(ready)

	executed := 0
	for len(ready) > 0 {
		component := ready[0]
		ready = ready[1:]

		abstractComponent, ok := dagTopology.AbstractComponentMap[component]
		if !ok {
			return &InvalidComponentError{ErrorMsg: "Concrete Implementation not present for component: " + component}
		}
		abstractComponent.Run(request)
		executed++

		unblocked := make([]string, 0)
		for child := range dagTopology.ComponentAdjacencyListMap[component] {
			inDegreeMap[child]--
			if inDegreeMap[child] == 0 {
				unblocked = append(unblocked, child)
			}
		}
		// components unblocked together run in name order so execution
		// order is reproducible across runs
		sort.Strings(unblocked)
		ready = append(ready, unblocked...)
	}

	if executed != len(dagTopology.AbstractComponentMap) {
		return &InvalidDagError{ErrorMsg: "dag execution did not reach every component"}
	}
	return nil
}
