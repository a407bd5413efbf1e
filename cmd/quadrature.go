/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/gotab/cell"
	"github.com/notargets/gotab/quadrature"
)

// quadratureCmd represents the quadrature command
var quadratureCmd = &cobra.Command{
	Use:   "quadrature",
	Short: "Generate a quadrature rule on a reference cell",
	Long: `
Prints the points and weights of a rule exact for the requested polynomial
degree, and the weight sum (the reference cell volume),

gotab quadrature -c triangle -d 4`,
	Run: func(cmd *cobra.Command, args []string) {
		cellName, _ := cmd.Flags().GetString("cell")
		degree, _ := cmd.Flags().GetInt("degree")
		ct, err := cell.TypeFromString(cellName)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		pts, wts, err := quadrature.MakeQuadrature(ct, degree)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		np, dim := pts.Dims()
		fmt.Printf("%s, degree %d: %d points\n", ct, degree, np)
		var sum float64
		for i := 0; i < np; i++ {
			for j := 0; j < dim; j++ {
				fmt.Printf("%12.8f ", pts.At(i, j))
			}
			fmt.Printf("w = %12.8f\n", wts[i])
			sum += wts[i]
		}
		fmt.Printf("weight sum = %12.8f\n", sum)
	},
}

func init() {
	rootCmd.AddCommand(quadratureCmd)
	quadratureCmd.Flags().StringP("cell", "c", "triangle", "reference cell name")
	quadratureCmd.Flags().IntP("degree", "d", 2, "requested degree of exactness")
}
