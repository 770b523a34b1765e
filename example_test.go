package evalchain

import "fmt"

func ExampleChain_Rebuild() {
	u235, err := NewSnapshot(map[string]interface{}{"zai": 922350})
	if err != nil {
		panic(err)
	}
	chain, err := NewChain().Append(u235, 1)
	if err != nil {
		panic(err)
	}
	u238, err := NewSnapshot(map[string]interface{}{"zai": 922380})
	if err != nil {
		panic(err)
	}
	chain, err = chain.Append(u238, 1)
	if err != nil {
		panic(err)
	}
	latest, err := chain.Rebuild(nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(chain.Len())
	fmt.Println(latest)
	// Output:
	// 2
	// {"zai":922380}
}
