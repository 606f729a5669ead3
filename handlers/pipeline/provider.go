package pipeline

import (
	"sync"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/config"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/dag"
)

// ComponentProviderHandler maps component names from the dependency config to
// their concrete implementations. The component set is fixed; registration
// only runs the names past the config so a typo in etcd surfaces as a missing
// component at execution time, not silently.
type ComponentProviderHandler struct {
	componentMap map[string]dag.AbstractComponent
	mapMutex     sync.RWMutex // To synchronize access to the map
}

func (cp *ComponentProviderHandler) RegisterComponent(request interface{}) {

	_, ok := request.(*config.PipelineConfig)
	if ok {
		cp.mapMutex.Lock() // Lock for write access
		defer cp.mapMutex.Unlock()

		cp.componentMap[ScannerComponentName] = &ScannerComponent{ComponentName: ScannerComponentName}
		cp.componentMap[LabelComponentName] = &LabelComponent{ComponentName: LabelComponentName}
		cp.componentMap[FeatureComponentName] = &FeatureComponent{ComponentName: FeatureComponentName}
		cp.componentMap[SplitterComponentName] = &SplitterComponent{ComponentName: SplitterComponentName}
	}
}

func (cp *ComponentProviderHandler) GetComponent(componentName string) dag.AbstractComponent {
	cp.mapMutex.RLock() // Lock for read access
	defer cp.mapMutex.RUnlock()
	return cp.componentMap[componentName]
}

// DefaultComponentDependency is the canonical four-stage pipeline: scan, then
// label and featurize, then split once both are done.
func DefaultComponentDependency() map[string][]string {
	return map[string][]string{
		ScannerComponentName: {LabelComponentName, FeatureComponentName},
		LabelComponentName:   {SplitterComponentName},
		FeatureComponentName: {SplitterComponentName},
	}
}
