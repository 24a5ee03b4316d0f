package layertree_test

import (
	"fmt"

	"github.com/dnrgps/dnrgps/pkg/host/memhost"
	"github.com/dnrgps/dnrgps/pkg/layertree"
)

func ExampleFindByCapability() {
	lakes := memhost.NewFeatureLayer("Lakes", memhost.UTM15N)
	rivers := memhost.NewFeatureLayer("Rivers", memhost.UTM15N)
	m := memhost.NewMap("Layers", memhost.UTM15N).With(
		memhost.NewLayer("Hillshade"),
		memhost.NewGroup("Hydro", lakes, rivers),
	)

	for _, nl := range layertree.FindByCapability(m, layertree.FeatureQueries) {
		fmt.Println(nl.Address, nl.Name)
	}
	// Output:
	// 1-0 Hydro/Lakes
	// 1-1 Hydro/Rivers
}

func ExampleParseAddress() {
	a, err := layertree.ParseAddress("2-0-1")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(len(a), a)
	// Output:
	// 3 2-0-1
}
