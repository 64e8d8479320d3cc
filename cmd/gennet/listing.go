package main

import (
	"fmt"

	"gennet-sim/pkg/robustness"
)

// prints the network families and removal policies this build knows about
func printCatalog() {
	fmt.Println("network families:")
	fmt.Println("  random      - Erdos-Renyi G(n,p)")
	fmt.Println("  prefattach  - preferential attachment (Barabasi-Albert)")
	fmt.Println("removal policies:")
	for _, policy := range robustness.Policies() {
		fmt.Printf("  %v\n", policy)
	}
}
