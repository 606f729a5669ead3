package dag

import (
	"fmt"
)

type ComponentInitializer struct {
	ComponentProvider ComponentProvider
}

func (ci *ComponentInitializer) InitializeComponentDag(dagConfigs map[string][]string) (*Topology, error) {

	if !IsValidDag(dagConfigs) {
		return nil, &InvalidDagError{ErrorMsg: fmt.Sprintf("Invalid DAG: %v", dagConfigs)}
	}
	adjacencyListMap := getComponentAdjacencyMap(dagConfigs)
	inDegreeMap := getInDegreeMap(adjacencyListMap)
	zeroInDegreeComponents := getZeroInDegreeComponents(adjacencyListMap, inDegreeMap)
	componentMap, err := ci.getAbstractComponents(adjacencyListMap)
	if err != nil {
		return nil, err
	}
	return &Topology{
		ZeroInDegreeComponents:    zeroInDegreeComponents,
		AbstractComponentMap:      componentMap,
		ComponentInDegreeMap:      inDegreeMap,
		ComponentAdjacencyListMap: adjacencyListMap,
	}, nil
}

func (ci *ComponentInitializer) getAbstractComponents(adjacencyListMap map[string]map[string]bool) (map[string]AbstractComponent, error) {

	componentMap := make(map[string]AbstractComponent)
	for node := range adjacencyListMap {
		currentComponent := ci.ComponentProvider.GetComponent(node)
		if currentComponent == nil {
			return nil, &InvalidComponentError{ErrorMsg: "Concrete Implementation not present for component: " + node}
		}
		componentMap[node] = currentComponent
	}
	return componentMap, nil
}

func getInDegreeMap(adjacencyListMap map[string]map[string]bool) map[string]int {

	inDegreeMap := make(map[string]int)
	for node := range adjacencyListMap {
		inDegreeMap[node] = 0
	}
	for _, children := range adjacencyListMap {
		for child := range children {
			inDegreeMap[child]++
		}
	}
	return inDegreeMap
}

func getZeroInDegreeComponents(adjacencyListMap map[string]map[string]bool, inDegreeMap map[string]int) []string {

	result := make([]string, 0)
	for node := range adjacencyListMap {
		if inDegreeMap[node] == 0 {
			result = append(result, node)
		}
	}
	return result
}

// getComponentAdjacencyMap expands the parent -> children dependency config
// into an adjacency map holding every node, including leaves that never
// appear as a key in the config.
func getComponentAdjacencyMap(dagConfigs map[string][]string) map[string]map[string]bool {

	adjacencyMap := make(map[string]map[string]bool)
	for parentNode, childNodes := range dagConfigs {
		if _, exists := adjacencyMap[parentNode]; !exists {
			adjacencyMap[parentNode] = make(map[string]bool)
		}
		for _, childNode := range childNodes {
			adjacencyMap[parentNode][childNode] = true
			if _, exists := adjacencyMap[childNode]; !exists {
				adjacencyMap[childNode] = make(map[string]bool)
			}
		}
	}
	return adjacencyMap
}
