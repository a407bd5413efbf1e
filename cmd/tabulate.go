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
	"io/ioutil"
	"os"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/notargets/gotab/cell"
	"github.com/notargets/gotab/element"
	"github.com/notargets/gotab/utils"
)

// ElementParameters is the YAML element deck read by the tabulate command
type ElementParameters struct {
	Family          string      `yaml:"Family"`
	Cell            string      `yaml:"Cell"`
	Degree          int         `yaml:"Degree"`
	DerivativeOrder int         `yaml:"DerivativeOrder"`
	Points          [][]float64 `yaml:"Points"`
}

func (ep *ElementParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ep)
}

func (ep *ElementParameters) Print() {
	fmt.Printf("[%s]\t\t= Family\n", ep.Family)
	fmt.Printf("[%s]\t\t= Cell\n", ep.Cell)
	fmt.Printf("[%d]\t\t\t= Degree\n", ep.Degree)
	fmt.Printf("[%d]\t\t\t= Derivative Order\n", ep.DerivativeOrder)
	fmt.Printf("[%d]\t\t\t= Points\n", len(ep.Points))
}

// tabulateCmd represents the tabulate command
var tabulateCmd = &cobra.Command{
	Use:   "tabulate",
	Short: "Tabulate a finite element basis at a batch of points",
	Long: `
Constructs the requested element and prints its basis function values and
derivatives at the points given in the YAML deck, one matrix per derivative
multi-index,

gotab tabulate -I element.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		deckFile, err := cmd.Flags().GetString("inputFile")
		if err != nil {
			panic(err)
		}
		ep := processElementInput(deckFile)
		RunTabulate(ep)
	},
}

func processElementInput(deckFile string) (ep *ElementParameters) {
	if len(deckFile) == 0 {
		fmt.Printf("error: must supply an element deck (-I, --inputFile)\n")
		exampleFile := `
########################################
Family: Lagrange
Cell: triangle
Degree: 2
DerivativeOrder: 1
Points:
  - [0.25, 0.25]
  - [0.5, 0.1]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := ioutil.ReadFile(deckFile)
	if err != nil {
		panic(err)
	}
	ep = &ElementParameters{}
	if err = ep.Parse(data); err != nil {
		panic(err)
	}
	return
}

func RunTabulate(ep *ElementParameters) {
	ep.Print()
	fam, err := element.FamilyFromString(ep.Family)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	ct, err := cell.TypeFromString(ep.Cell)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fe, err := element.CreateCached(fam, ct, ep.Degree)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if len(ep.Points) == 0 {
		fmt.Printf("error: deck contains no points\n")
		os.Exit(1)
	}
	pts := utils.NewMatrix(len(ep.Points), len(ep.Points[0]))
	for i, p := range ep.Points {
		pts.SetRow(i, p)
	}
	R, err := fe.Tabulate(pts, ep.DerivativeOrder)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("%s degree %d on %s, %d dofs, %s mapping\n",
		fe.Family, fe.Degree, fe.CellType, fe.NumDofs(), fe.Mapping)
	for di, M := range R {
		fmt.Print(M.Print(fmt.Sprintf("derivative %d", di)))
	}
}

func init() {
	rootCmd.AddCommand(tabulateCmd)
	tabulateCmd.Flags().StringP("inputFile", "I", "", "YAML element deck with family, cell, degree, derivative order and points")
}
